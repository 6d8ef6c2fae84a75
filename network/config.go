package network

import (
	"fmt"

	"github.com/example/flowgrid/core"
)

// Config bounds the network's fixed tables. Both tables are allocated once
// at construction; nothing grows afterwards.
type Config struct {
	MaxNodes    int
	MaxMessages int
}

// DefaultConfig returns the standard capacities.
func DefaultConfig() Config {
	return Config{
		MaxNodes:    core.DefaultMaxNodes,
		MaxMessages: core.DefaultMaxMessages,
	}
}

// Validate checks the capacities are usable. MaxNodes is additionally capped
// by the 8-bit node id space.
func (c Config) Validate() error {
	if c.MaxNodes < 1 {
		return fmt.Errorf("MaxNodes must be at least 1, got %d", c.MaxNodes)
	}
	if c.MaxNodes > 255 {
		return fmt.Errorf("MaxNodes %d exceeds the node id space (255)", c.MaxNodes)
	}
	if c.MaxMessages < 1 {
		return fmt.Errorf("MaxMessages must be at least 1, got %d", c.MaxMessages)
	}
	return nil
}
