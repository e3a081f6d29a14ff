package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrQueueClosed = errors.New("command queue is shutting down")

// Task pairs a command with the channel its response goes to
type Task struct {
	Cmd      Command
	Response chan<- ProcessorResponse
}

// CommandQueue feeds commands to a single worker goroutine, so game state is
// only ever touched by one goroutine.
type CommandQueue struct {
	tasks   chan Task
	handler func(Command) ProcessorResponse
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewCommandQueue starts the worker. size bounds the number of queued commands.
func NewCommandQueue(size int, handler func(Command) ProcessorResponse) *CommandQueue {
	if size < 1 {
		size = 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &CommandQueue{
		tasks:   make(chan Task, size),
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
	}

	q.wg.Add(1)
	go q.worker()
	return q
}

func (q *CommandQueue) worker() {
	defer q.wg.Done()

	for {
		select {
		case task := <-q.tasks:
			result := q.handler(task.Cmd)

			// Response channels are buffered; an abandoned caller never blocks the worker
			select {
			case task.Response <- result:
			default:
			}

		case <-q.ctx.Done():
			return
		}
	}
}

// Submit queues a task, waiting for room until ctx ends
func (q *CommandQueue) Submit(ctx context.Context, task Task) error {
	select {
	case <-q.ctx.Done():
		return ErrQueueClosed
	default:
	}

	select {
	case q.tasks <- task:
		return nil
	case <-q.ctx.Done():
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do submits cmd and waits for its response
func (q *CommandQueue) Do(ctx context.Context, cmd Command) (ProcessorResponse, error) {
	respChan := make(chan ProcessorResponse, 1)
	if err := q.Submit(ctx, Task{Cmd: cmd, Response: respChan}); err != nil {
		return ProcessorResponse{}, err
	}

	select {
	case resp := <-respChan:
		return resp, nil
	case <-q.ctx.Done():
		return ProcessorResponse{}, ErrQueueClosed
	case <-ctx.Done():
		return ProcessorResponse{}, ctx.Err()
	}
}

// Shutdown stops the worker. Commands still queued are dropped.
func (q *CommandQueue) Shutdown(timeout time.Duration) error {
	q.cancel()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout exceeded")
	}
}
