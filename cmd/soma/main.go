// Command soma runs a leaky-integrate-and-fire neuron chain simulation.
package main

func main() {
	Execute()
}
