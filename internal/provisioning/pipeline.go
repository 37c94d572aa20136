package provisioning

import (
	"fmt"
	"time"
)

// Step is one provisioning step.
type Step interface {
	// Name returns the short identifier used in records and the summary.
	Name() string

	// Run executes the step against the shared context.
	Run(ctx *Context) StepResult
}

// DefaultSteps returns the fixed step sequence for a provisioning run.
// Order matters: later steps read handles recorded by earlier ones.
func DefaultSteps() []Step {
	return []Step{
		createProject{},
		verifyProject{},
		linkBilling{},
		enableServices{},
		serviceAccount{},
		delegation{},
		consentBrand{},
		serviceAccountKey{},
	}
}

// RunSteps executes steps in order. Degraded steps are recorded and the
// sequence continues; only a Fatal result stops the run, and its error is
// returned. The caller emits the summary afterwards in every case.
func RunSteps(ctx *Context, steps []Step) error {
	start := time.Now()
	ctx.Observer.Printf("starting provisioning with %d steps", len(steps))

	for i, step := range steps {
		name := step.Name()
		ctx.Observer.Event(Event{Type: EventStepStarted, Step: name})
		ctx.Out.Section("%s (%d/%d)", name, i+1, len(steps))

		res := step.Run(ctx)
		ctx.State.record(name, res.Outcome, res.Detail)

		switch res.Outcome {
		case OutcomeSuccess:
			ctx.Observer.Event(Event{Type: EventStepCompleted, Step: name, Message: res.Detail})
		case OutcomeFallback:
			ctx.Observer.Event(Event{Type: EventStepFallback, Step: name, Message: res.Detail})
		case OutcomeDegraded:
			ctx.Observer.Event(Event{Type: EventStepDegraded, Step: name, Message: fmt.Sprintf("%s: %v", res.Detail, res.Err)})
		case OutcomeFatal:
			ctx.Observer.Event(Event{Type: EventStepFailed, Step: name, Message: fmt.Sprintf("%v", res.Err)})
			if res.Err != nil {
				return fmt.Errorf("%s: %w", name, res.Err)
			}
			return fmt.Errorf("%s: %s", name, res.Detail)
		}
	}

	ctx.Observer.Printf("provisioning finished in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
