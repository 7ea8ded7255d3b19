// Package output delivers final text into the user's environment over
// one or both delivery channels.
package output

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// Output tracks one delivery of an immutable piece of text.
type Output struct {
	id     uuid.UUID
	text   string
	method domain.OutputMethod
	sink   ports.EventSink

	mu     sync.Mutex
	status domain.OutputStatus
	err    error
}

// New creates a pending output over text. The text is fixed here and
// never changes afterwards.
func New(sink ports.EventSink, text string, method domain.OutputMethod) *Output {
	if sink == nil {
		sink = ports.NopSink{}
	}
	return &Output{
		id:     uuid.New(),
		text:   text,
		method: method,
		sink:   sink,
		status: domain.OutputPending,
	}
}

// ID returns the stable identity of this delivery.
func (o *Output) ID() uuid.UUID { return o.id }

// Text returns the text being delivered.
func (o *Output) Text() string { return o.text }

// Method returns the configured destination(s).
func (o *Output) Method() domain.OutputMethod { return o.method }

// Status returns the current lifecycle state.
func (o *Output) Status() domain.OutputStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Err returns the delivery error, if the output failed.
func (o *Output) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Execute runs the delivery through tsink. Under the Both method each
// channel runs independently: a failed insertion does not roll back or
// skip the clipboard copy, and the errors of both channels are joined.
// Execute is valid once, from pending; anywhere else it is a no-op.
func (o *Output) Execute(ctx context.Context, tsink ports.TextSink, win *domain.WindowContext) error {
	o.mu.Lock()
	if o.status != domain.OutputPending {
		state := o.status
		o.mu.Unlock()
		o.sink.TransitionRejected("output", "execute", string(state))
		return nil
	}
	o.status = domain.OutputOutputting
	o.mu.Unlock()

	var errs []error
	switch o.method {
	case domain.OutputActiveField:
		if err := tsink.InsertAtCursor(ctx, o.text, win); err != nil {
			errs = append(errs, fmt.Errorf("insert at cursor: %w", err))
		}
	case domain.OutputClipboard:
		if err := o.copy(ctx, tsink); err != nil {
			errs = append(errs, err)
		}
	case domain.OutputBoth:
		if err := tsink.InsertAtCursor(ctx, o.text, win); err != nil {
			errs = append(errs, fmt.Errorf("insert at cursor: %w", err))
		}
		if err := o.copy(ctx, tsink); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported output method %q", o.method))
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		o.mu.Lock()
		o.status = domain.OutputFailed
		o.err = err
		o.mu.Unlock()
		o.sink.OutputFailed(o.id, err)
		return err
	}

	o.mu.Lock()
	o.status = domain.OutputCompleted
	o.mu.Unlock()
	o.sink.OutputCompleted(o.id, o.text, o.method)
	return nil
}

func (o *Output) copy(ctx context.Context, tsink ports.TextSink) error {
	if err := tsink.CopyToClipboard(ctx, o.text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	o.sink.OutputCopied(o.id, o.text)
	return nil
}
