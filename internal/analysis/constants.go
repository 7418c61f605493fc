// Package analysis sweeps N64 code regions, annotates the listing with
// labels and call targets, and runs detectors over the call findings.
package analysis

// Constants for analysis operations
const (
	// DefaultSweepInstructions is the listing length when none is given
	DefaultSweepInstructions = 256

	// MaxSweepInstructions bounds a single sweep (the IPL3 copy size)
	MaxSweepInstructions = 0x100000 / 4

	// MaxFunctionInstructions is the maximum number of instructions
	// scanned when looking for a function's return
	MaxFunctionInstructions = 1000

	// sweepChunk is the number of instructions decoded per worker task
	sweepChunk = 256
)
