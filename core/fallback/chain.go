// ABOUTME: Ordered fallback chain that tries named strategies until one succeeds
// ABOUTME: Each attempt is time-boxed; a timed-out attempt is abandoned and the chain moves on

package fallback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mishurahman616/portfolio/core/interfaces"
)

// DefaultTimeout bounds a single attempt when the chain has no timeout set
const DefaultTimeout = 5 * time.Second

// Strategy is one named way of producing a value
type Strategy[T any] struct {
	Name    string
	Attempt func(ctx context.Context) (T, error)
}

// Chain tries its strategies in order
type Chain[T any] struct {
	Strategies []Strategy[T]
	Timeout    time.Duration
	Logger     interfaces.Logger
}

// AttemptError records why a single strategy failed
type AttemptError struct {
	Strategy string
	Err      error
}

func (e AttemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

// ExhaustedError is returned when every strategy failed
type ExhaustedError struct {
	Attempts []AttemptError
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return "no strategies configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return "all strategies failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes each attempt error to errors.Is / errors.As
func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// PanicError is returned when a strategy panicked. It stops the chain
// instead of counting as an ordinary failed attempt.
type PanicError struct {
	Strategy string
	Value    interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: strategy panicked: %v", e.Strategy, e.Value)
}

// IsPanic checks if an error is a PanicError
func IsPanic(err error) bool {
	var p *PanicError
	return errors.As(err, &p)
}

// IsExhausted checks if an error is an ExhaustedError
func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}

type result[T any] struct {
	value T
	err   error
}

// Run returns the value of the first strategy that succeeds and its name.
// A cancelled parent context stops the chain with the context error, and a
// panicking strategy stops it with a *PanicError.
func (c *Chain[T]) Run(ctx context.Context) (T, string, error) {
	var zero T
	logger := interfaces.LoggerOrNop(c.Logger)
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	exhausted := &ExhaustedError{}
	for _, strategy := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}

		value, err := c.attempt(ctx, strategy, timeout)
		if err == nil {
			logger.Debug("Fallback strategy succeeded", map[string]interface{}{
				"strategy": strategy.Name,
			})
			return value, strategy.Name, nil
		}

		// The parent being cancelled is not a strategy failure
		if ctx.Err() != nil {
			return zero, "", ctx.Err()
		}
		if IsPanic(err) {
			return zero, "", err
		}

		logger.Debug("Fallback strategy failed", map[string]interface{}{
			"strategy": strategy.Name,
			"error":    err.Error(),
		})
		exhausted.Attempts = append(exhausted.Attempts, AttemptError{Strategy: strategy.Name, Err: err})
	}

	return zero, "", exhausted
}

// attempt runs one strategy under its own deadline. The result channel is
// buffered so a late answer never blocks the abandoned goroutine.
func (c *Chain[T]) attempt(ctx context.Context, strategy Strategy[T], timeout time.Duration) (T, error) {
	var zero T
	if strategy.Attempt == nil {
		return zero, errors.New("strategy has no attempt function")
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result[T]{err: &PanicError{Strategy: strategy.Name, Value: r}}
			}
		}()
		v, err := strategy.Attempt(attemptCtx)
		done <- result[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-attemptCtx.Done():
		return zero, fmt.Errorf("attempt abandoned: %w", attemptCtx.Err())
	}
}
