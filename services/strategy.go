package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var ErrStrategiesExhausted = errors.New("every lookup strategy came back empty")

// Strategy is one formulation of a lookup. An empty result is a miss, not an error.
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) ([]T, error)
}

// ExhaustedError is returned by FirstNonEmpty when no strategy produced a result.
type ExhaustedError struct {
	Attempts int
	Failures []error
}

func (e *ExhaustedError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("%s (%d attempts)", ErrStrategiesExhausted, e.Attempts)
	}
	return fmt.Sprintf("%s (%d attempts, %d failed): %v", ErrStrategiesExhausted, e.Attempts, len(e.Failures), errors.Join(e.Failures...))
}

func (e *ExhaustedError) Is(target error) bool { return target == ErrStrategiesExhausted }

func (e *ExhaustedError) Unwrap() []error { return e.Failures }

// AllFailed reports whether every attempt errored, as opposed to at least one
// attempt succeeding with nothing to return.
func (e *ExhaustedError) AllFailed() bool {
	return e.Attempts > 0 && len(e.Failures) == e.Attempts
}

// Resolved tells which strategy produced a FirstNonEmpty result.
type Resolved struct {
	Strategy string
	Index    int
}

// FirstNonEmpty runs strategies in order and returns the first non-empty
// result. A failing strategy is logged and skipped. A cancelled context stops
// the sequence with the context error.
func FirstNonEmpty[T any](ctx context.Context, log zerolog.Logger, strategies ...Strategy[T]) ([]T, Resolved, error) {
	exhausted := &ExhaustedError{}
	for i, s := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, Resolved{}, err
		}
		exhausted.Attempts++

		out, err := s.Run(ctx)
		if err != nil {
			log.Warn().Err(err).Str("strategy", s.Name).Msg("lookup strategy failed")
			exhausted.Failures = append(exhausted.Failures, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		if len(out) == 0 {
			log.Debug().Str("strategy", s.Name).Msg("lookup strategy returned no records")
			continue
		}
		log.Debug().Str("strategy", s.Name).Int("records", len(out)).Msg("lookup strategy resolved")
		return out, Resolved{Strategy: s.Name, Index: i}, nil
	}
	return nil, Resolved{}, exhausted
}

// fallbackReason labels why a strategy sequence ended without records: every
// attempt came back empty, or at least one of them failed.
func fallbackReason(err error) string {
	var ex *ExhaustedError
	if errors.As(err, &ex) && len(ex.Failures) == 0 {
		return reasonEmpty
	}
	return reasonFailed
}
