package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultFaultRate is the default fraction of simulated storage
	// operations that fail. Zero disables failure simulation.
	DefaultFaultRate = 0.0

	// DefaultLatency is the default simulated storage latency.
	DefaultLatency = 0 * time.Millisecond
)
