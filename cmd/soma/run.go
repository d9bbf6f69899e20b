package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spikelab/soma/examples/lifchain"
	"github.com/spikelab/soma/hwtypes"
	"github.com/spikelab/soma/simulation"
	"github.com/spikelab/soma/tracing"
)

var runFlags struct {
	capacity   int
	width      uint
	threshold  uint64
	leakRate   uint64
	resetValue uint64

	weight    uint64
	numSpikes int
	cycles    uint64

	literalUpdate bool

	monitorOn   bool
	monitorPort int
	output      string
	csvTrace    string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a spike-buffer-fed neuron chain",
	RunE:  runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&runFlags.capacity, "capacity", 16,
		"capacity of the input and output spike buffers")
	runCmd.Flags().UintVar(&runFlags.width, "width", 8,
		"bit width of the stored values, 1 to 64")
	runCmd.Flags().Uint64Var(&runFlags.threshold, "threshold", 100,
		"membrane potential at which the neuron fires")
	runCmd.Flags().Uint64Var(&runFlags.leakRate, "leak", 1,
		"per-cycle membrane potential leak")
	runCmd.Flags().Uint64Var(&runFlags.resetValue, "reset-value", 0,
		"membrane potential after a spike")
	runCmd.Flags().Uint64Var(&runFlags.weight, "weight", 30,
		"weight of each input spike")
	runCmd.Flags().IntVar(&runFlags.numSpikes, "num-spikes", 10,
		"number of input spikes fed into the chain")
	runCmd.Flags().Uint64Var(&runFlags.cycles, "cycles", 100,
		"number of cycles to simulate")
	runCmd.Flags().BoolVar(&runFlags.literalUpdate, "literal-update", false,
		"use the literal hardware update order, "+
			"in which input weights are never integrated")
	runCmd.Flags().BoolVar(&runFlags.monitorOn, "monitor", false,
		"serve the monitoring API while the simulation runs")
	runCmd.Flags().IntVar(&runFlags.monitorPort,
		"monitor-port", envInt("SOMA_MONITOR_PORT", 0),
		"port of the monitoring server, 0 for a random port")
	runCmd.Flags().StringVar(&runFlags.output,
		"output", envString("SOMA_OUTPUT", ""),
		"name of the output database file")
	runCmd.Flags().StringVar(&runFlags.csvTrace, "csv-trace", "",
		"also write the trace to the named CSV file")
}

func runSimulation(_ *cobra.Command, _ []string) error {
	width, err := hwtypes.NewWidth(runFlags.width)
	if err != nil {
		return err
	}

	simBuilder := simulation.MakeBuilder()
	if runFlags.monitorOn {
		if runFlags.monitorPort > 0 {
			simBuilder = simBuilder.WithMonitorPort(runFlags.monitorPort)
		}
	} else {
		simBuilder = simBuilder.WithoutMonitoring()
	}

	if runFlags.output != "" {
		simBuilder = simBuilder.WithOutputFileName(runFlags.output)
	}

	s := simBuilder.Build()
	defer s.Terminate()

	engine := s.GetEngine()

	pattern := make([]uint64, runFlags.numSpikes)
	for i := range pattern {
		pattern[i] = runFlags.weight
	}

	chainBuilder := lifchain.MakeBuilder().
		WithEngine(engine).
		WithCapacity(runFlags.capacity).
		WithWidth(width).
		WithThreshold(runFlags.threshold).
		WithLeakRate(runFlags.leakRate).
		WithResetValue(runFlags.resetValue).
		WithInputPattern(pattern).
		WithCycles(runFlags.cycles)
	if runFlags.literalUpdate {
		chainBuilder = chainBuilder.WithLiteralUpdateOrder()
	}

	chain, err := chainBuilder.Build("Chain")
	if err != nil {
		return err
	}

	attachTracers(s, chain)

	s.RegisterComponent(chain)
	s.RegisterComponent(chain.InputBuffer())
	s.RegisterComponent(chain.Neuron())
	s.RegisterComponent(chain.OutputBuffer())

	chain.TickNow()

	err = engine.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Simulated %d cycles\n", engine.CurrentCycle())
	fmt.Printf("Spikes emitted: %d\n", chain.SpikesEmitted())
	fmt.Printf("Final membrane potential: %d\n", chain.Neuron().Potential())
	fmt.Printf("Output buffer occupancy: %d/%d\n",
		chain.OutputBuffer().Occupancy(), chain.OutputBuffer().Capacity())

	return nil
}

func attachTracers(s *simulation.Simulation, chain *lifchain.Comp) {
	engine := s.GetEngine()

	backends := []tracing.Backend{
		tracing.NewDBBackend(s.GetDataRecorder()),
	}
	if runFlags.csvTrace != "" {
		backends = append(backends, tracing.NewCSVBackend(runFlags.csvTrace))
	}

	for _, backend := range backends {
		tracer := tracing.NewTracer(engine, backend)

		chain.Neuron().AcceptHook(tracer)
		chain.InputBuffer().AcceptHook(tracer)
		chain.OutputBuffer().AcceptHook(tracer)
	}
}
