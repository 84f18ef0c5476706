package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
)

// Config controls the run loop. Record is the snapshot interval in steps;
// zero keeps only the first and last states.
type Config struct {
	Dt            float64
	Steps         int
	Record        int
	ValidateState bool
}

// Observer is notified with the system after every step.
type Observer interface {
	OnStep(s *dynamo.System, step int)
}

// Snapshot is a copy of every body state at one instant.
type Snapshot struct {
	Time   float64
	States []dynamo.BodyState
}

type Result struct {
	Integrator  string
	Final       *dynamo.System
	Snapshots   []Snapshot
	Metrics     map[string]float64
	StepsTaken  int
	Evaluations int
	Elapsed     time.Duration
}

// StepError reports the first step that produced an invalid state.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%g): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

type evaluator interface {
	Evaluations() int
}

// Runner steps a system with one integrator and feeds the attached metrics
// and observers.
type Runner struct {
	integrator dynamo.Integrator
	metrics    []metrics.Metric
	observers  []Observer
	logger     *slog.Logger
}

func NewRunner(integ dynamo.Integrator) *Runner {
	return &Runner{
		integrator: integ,
		logger:     slog.Default(),
	}
}

func (r *Runner) AddMetric(m metrics.Metric)    { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)        { r.observers = append(r.observers, o) }
func (r *Runner) SetLogger(l *slog.Logger)      { r.logger = l }
func (r *Runner) Integrator() dynamo.Integrator { return r.integrator }

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Record < 0 {
		return fmt.Errorf("record must not be negative, got %d", cfg.Record)
	}
	return nil
}

// Run performs cfg.Steps fixed steps from sys. sys itself is not modified.
// Cancellation is checked between steps; a cancelled run returns the partial
// result together with the context error.
func (r *Runner) Run(ctx context.Context, sys *dynamo.System, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Integrator: r.integrator.Name(),
		Metrics:    make(map[string]float64),
	}
	if cfg.Record > 0 {
		result.Snapshots = make([]Snapshot, 0, cfg.Steps/cfg.Record+2)
	}

	for _, m := range r.metrics {
		m.Reset()
		m.Observe(sys)
	}

	r.logger.Info("run started",
		"integrator", r.integrator.Name(),
		"bodies", sys.Len(),
		"dt", cfg.Dt,
		"steps", cfg.Steps,
	)

	start := time.Now()
	result.Snapshots = append(result.Snapshots, snapshot(sys))

	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		next := r.integrator.Step(sys, cfg.Dt)

		if cfg.ValidateState {
			if err := next.Validate(); err != nil {
				runErr = &StepError{Step: i + 1, Time: next.Time(), Err: err}
				break
			}
		}

		sys = next
		result.StepsTaken++

		for _, m := range r.metrics {
			m.Observe(sys)
		}
		for _, o := range r.observers {
			o.OnStep(sys, result.StepsTaken)
		}

		if cfg.Record > 0 && result.StepsTaken%cfg.Record == 0 {
			result.Snapshots = append(result.Snapshots, snapshot(sys))
			r.logger.Debug("snapshot", "step", result.StepsTaken, "t", sys.Time())
		}
	}

	if last := result.Snapshots[len(result.Snapshots)-1]; last.Time != sys.Time() {
		result.Snapshots = append(result.Snapshots, snapshot(sys))
	}

	result.Final = sys
	result.Elapsed = time.Since(start)
	if ev, ok := r.integrator.(evaluator); ok {
		result.Evaluations = ev.Evaluations() * result.StepsTaken
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		r.logger.Warn("run stopped", "integrator", r.integrator.Name(), "steps", result.StepsTaken, "err", runErr)
		return result, runErr
	}

	r.logger.Info("run finished",
		"integrator", r.integrator.Name(),
		"t", sys.Time(),
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// RunWithCallback steps sys until cfg.Steps are done or callback returns
// false. No snapshots or metrics are kept.
func (r *Runner) RunWithCallback(ctx context.Context, sys *dynamo.System, cfg Config, callback func(*dynamo.System) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(sys) {
			return nil
		}

		sys = r.integrator.Step(sys, cfg.Dt)

		if cfg.ValidateState {
			if err := sys.Validate(); err != nil {
				return &StepError{Step: i + 1, Time: sys.Time(), Err: err}
			}
		}
	}

	callback(sys)
	return nil
}

// Run is a shorthand for a Runner with no metrics or observers.
func Run(ctx context.Context, sys *dynamo.System, integ dynamo.Integrator, cfg Config) (*Result, error) {
	return NewRunner(integ).Run(ctx, sys, cfg)
}

func snapshot(s *dynamo.System) Snapshot {
	return Snapshot{Time: s.Time(), States: s.States()}
}
