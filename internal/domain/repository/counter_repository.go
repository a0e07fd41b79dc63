package repository

import "context"

// CounterRepository defines the interface for named document sequences
type CounterRepository interface {
	// Next increments the named sequence and returns the new value,
	// creating the sequence at 1 on first use
	Next(ctx context.Context, name string) (int64, error)
}
