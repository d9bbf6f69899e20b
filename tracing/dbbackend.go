package tracing

import (
	"github.com/spikelab/soma/datarecording"
)

// Table names used by the DBBackend.
const (
	SpikeTable     = "spike_trace"
	PotentialTable = "potential_trace"
	BufferOpTable  = "buffer_trace"
)

// DBBackend stores trace entries through a DataRecorder.
type DBBackend struct {
	recorder datarecording.DataRecorder
}

// NewDBBackend creates the trace tables on the recorder and returns a backend
// writing to them.
func NewDBBackend(recorder datarecording.DataRecorder) *DBBackend {
	recorder.CreateTable(SpikeTable, SpikeEntry{})
	recorder.CreateTable(PotentialTable, PotentialEntry{})
	recorder.CreateTable(BufferOpTable, BufferOpEntry{})

	return &DBBackend{recorder: recorder}
}

// WriteSpike records a fired spike.
func (b *DBBackend) WriteSpike(e SpikeEntry) {
	b.recorder.InsertData(SpikeTable, e)
}

// WritePotential records a committed membrane potential.
func (b *DBBackend) WritePotential(e PotentialEntry) {
	b.recorder.InsertData(PotentialTable, e)
}

// WriteBufferOp records a buffer operation.
func (b *DBBackend) WriteBufferOp(e BufferOpEntry) {
	b.recorder.InsertData(BufferOpTable, e)
}
