package tracing

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/tebeka/atexit"
)

// CSVBackend stores trace entries in a CSV file.
type CSVBackend struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVBackend creates the trace CSV file. If the file already exists, it
// will be overwritten.
func NewCSVBackend(path string) *CSVBackend {
	file, err := os.Create(path)
	if err != nil {
		panic(err)
	}

	b := &CSVBackend{
		path:   path,
		file:   file,
		writer: csv.NewWriter(file),
	}

	b.mustWrite([]string{
		"cycle", "kind", "where", "op", "value", "occupancy"})

	atexit.Register(func() {
		b.Flush()
		err := b.file.Close()
		if err != nil {
			panic(err)
		}
	})

	return b
}

// WriteSpike records a fired spike.
func (b *CSVBackend) WriteSpike(e SpikeEntry) {
	b.mustWrite([]string{
		strconv.FormatUint(e.Cycle, 10),
		"spike", e.Neuron, "",
		strconv.FormatUint(e.Potential, 10), "",
	})
}

// WritePotential records a committed membrane potential.
func (b *CSVBackend) WritePotential(e PotentialEntry) {
	b.mustWrite([]string{
		strconv.FormatUint(e.Cycle, 10),
		"potential", e.Neuron, "",
		strconv.FormatUint(e.Potential, 10), "",
	})
}

// WriteBufferOp records a buffer operation.
func (b *CSVBackend) WriteBufferOp(e BufferOpEntry) {
	b.mustWrite([]string{
		strconv.FormatUint(e.Cycle, 10),
		"buffer", e.Buffer, e.Op,
		strconv.FormatUint(e.Value, 10),
		strconv.Itoa(e.Occupancy),
	})
}

// Flush writes the buffered rows to the file.
func (b *CSVBackend) Flush() {
	b.writer.Flush()

	err := b.writer.Error()
	if err != nil {
		panic(err)
	}
}

func (b *CSVBackend) mustWrite(record []string) {
	err := b.writer.Write(record)
	if err != nil {
		panic(err)
	}
}
