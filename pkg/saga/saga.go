// Package saga runs a sequence of steps and undoes the completed ones, in
// reverse order, when a later step fails.
package saga

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Step pairs an action with the compensation that undoes it. Compensate
// may be nil for a step that leaves nothing behind.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
	log      *zap.Logger
}

// New creates an empty saga. A positive timeout bounds the whole run;
// compensations run on a fresh context so they are not cut short by it.
func New(name string, timeout time.Duration, log *zap.Logger) *Saga {
	if log == nil {
		log = zap.NewNop()
	}
	return &Saga{name: name, timeout: timeout, log: log}
}

func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{Name: name, Action: action, Compensate: compensate})
	return s
}

// Execute runs the steps in order. The first failing action's error is
// returned as is, after the steps before it have been compensated.
// Compensation errors are logged, not returned.
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.compensate(context.WithoutCancel(ctx))
			return fmt.Errorf("saga %s timed out before %s: %w", s.name, step.Name, err)
		}
		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.log.Debug("saga step failed",
					zap.String("saga", s.name),
					zap.String("step", step.Name),
					zap.Error(err),
				)
				s.compensate(context.WithoutCancel(ctx))
				return err
			}
		}
		s.executed = append(s.executed, step)
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.log.Warn("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
		}
	}
	s.executed = nil
}
