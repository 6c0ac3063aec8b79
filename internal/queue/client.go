package queue

import "context"

// Client hands generation jobs to a queue backend for the worker process to
// pick up. A nil Client on the processing service means jobs run in-process.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
