package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/instance-scheduler/internal/inventory"
	"github.com/imamik/instance-scheduler/internal/metrics"
	"github.com/imamik/instance-scheduler/internal/reconcile"
	"github.com/imamik/instance-scheduler/internal/schedule"
	"github.com/imamik/instance-scheduler/internal/util/async"
)

// Outcome is what happened to one instance during a run.
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeStarted   Outcome = "started"
	OutcomeStopped   Outcome = "stopped"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// Result records the handling of a single instance.
type Result struct {
	ID       string
	Name     string
	Outcome  Outcome
	Timezone string
	LocalNow time.Time
	Decision reconcile.Decision
	// DryRun is set when a start or stop was decided but not issued.
	DryRun bool
	Err    error
}

// Summary aggregates the results of a run.
type Summary struct {
	Provider string
	DryRun   bool
	Total    int
	// Scheduled counts instances that carried schedule tags.
	Scheduled int
	Skipped   int
	Invalid   int
	Started   int
	Stopped   int
	Unchanged int
	Failed    int
	Duration  time.Duration
	Results   []Result
}

// Outcomes returns the per-outcome instance counts.
func (s Summary) Outcomes() map[string]int {
	return map[string]int{
		string(OutcomeSkipped):   s.Skipped,
		string(OutcomeInvalid):   s.Invalid,
		string(OutcomeStarted):   s.Started,
		string(OutcomeStopped):   s.Stopped,
		string(OutcomeUnchanged): s.Unchanged,
		string(OutcomeFailed):    s.Failed,
	}
}

// Runner evaluates and reconciles every instance of one platform.
type Runner struct {
	platform    inventory.Platform
	clock       clock.PassiveClock
	evaluator   *schedule.Evaluator
	observer    Observer
	metrics     *metrics.Recorder
	dryRun      bool
	concurrency int
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock schedules are evaluated against.
func WithClock(c clock.PassiveClock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithObserver sets the event sink. By default events go to the logger in
// the context passed to Run.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		r.observer = o
	}
}

// WithMetrics records decisions and actions on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithDryRun computes and logs decisions without calling the actuator.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithConcurrency processes up to n instances in parallel.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// New creates a Runner for platform.
func New(platform inventory.Platform, opts ...Option) *Runner {
	r := &Runner{
		platform:    platform,
		clock:       clock.RealClock{},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.evaluator = schedule.NewEvaluator(r.clock)
	return r
}

// Run performs one pass. The returned error is non-nil only when the
// inventory could not be listed or ctx was cancelled mid-run; in the latter
// case the summary covers the instances handled so far.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	begin := r.clock.Now()
	obs := r.observer
	if obs == nil {
		obs = NewLogObserver(log.FromContext(ctx))
	}
	obs = obs.WithFields(map[string]string{"provider": r.platform.Name()})

	summary := Summary{Provider: r.platform.Name(), DryRun: r.dryRun}

	obs.Event(Event{Type: EventRunStarted, Message: "Finding instances with schedules..."})
	instances, err := r.platform.ListInstances(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list instances: %w", err)
	}

	results := make([]Result, len(instances))
	runErr := async.ForEach(ctx, len(instances), r.concurrency, func(ctx context.Context, i int) {
		results[i] = r.process(ctx, obs, instances[i])
	})

	for _, res := range results {
		if res.Outcome == "" {
			continue
		}
		summary.add(res)
	}
	summary.Duration = r.clock.Now().Sub(begin)
	r.metrics.RecordRun(summary.Outcomes(), summary.Duration, r.clock.Now())

	obs.Event(Event{
		Type:    EventRunCompleted,
		Message: "Run completed",
		Fields: map[string]string{
			"total":     fmt.Sprint(summary.Total),
			"scheduled": fmt.Sprint(summary.Scheduled),
			"started":   fmt.Sprint(summary.Started),
			"stopped":   fmt.Sprint(summary.Stopped),
			"unchanged": fmt.Sprint(summary.Unchanged),
			"invalid":   fmt.Sprint(summary.Invalid),
			"failed":    fmt.Sprint(summary.Failed),
			"dryRun":    fmt.Sprint(r.dryRun),
		},
	})

	if runErr != nil {
		return summary, fmt.Errorf("run interrupted: %w", runErr)
	}
	return summary, nil
}

func (s *Summary) add(res Result) {
	s.Total++
	s.Results = append(s.Results, res)
	if res.Outcome != OutcomeSkipped {
		s.Scheduled++
	}
	switch res.Outcome {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeInvalid:
		s.Invalid++
	case OutcomeStarted:
		s.Started++
	case OutcomeStopped:
		s.Stopped++
	case OutcomeUnchanged:
		s.Unchanged++
	case OutcomeFailed:
		s.Failed++
	}
}

// process handles one instance. It never returns an error: every failure is
// recorded on the result and reported to obs.
func (r *Runner) process(ctx context.Context, obs Observer, inst inventory.Instance) Result {
	res := Result{ID: inst.ID, Name: inst.Name}

	if len(inst.Tags) == 0 {
		res.Outcome = OutcomeSkipped
		obs.Event(Event{Type: EventInstanceSkipped, Instance: inst.ID, Message: "Instance does not have any tags"})
		return res
	}
	pair, ok := schedule.ParseTags(inst.Tags)
	if !ok {
		res.Outcome = OutcomeSkipped
		obs.Event(Event{Type: EventInstanceSkipped, Instance: inst.ID, Message: "Instance does not have Start/Stop tags"})
		return res
	}

	ev, err := r.evaluator.Evaluate(pair)
	if err != nil {
		res.Err = err
		if !schedule.IsValidation(err) {
			res.Outcome = OutcomeFailed
			obs.Event(Event{Type: EventInstanceFailed, Instance: inst.ID, Message: "Could not evaluate schedule", Err: err})
			return res
		}
		res.Outcome = OutcomeInvalid
		r.metrics.RecordValidationFailure()
		obs.Event(Event{Type: EventInstanceInvalid, Instance: inst.ID, Message: "Could not decode schedule tags", Err: err})
		return res
	}
	res.Timezone, res.LocalNow = ev.Timezone, ev.LocalNow

	decision := reconcile.Decide(inst.State, ev.State)
	res.Decision = decision
	r.metrics.RecordDecision(string(decision.Action), string(decision.Reason))

	obs.Event(Event{
		Type:     EventInstanceEvaluated,
		Instance: inst.ID,
		Message:  fmt.Sprintf("Current '%s' Time: %s", ev.Timezone, ev.LocalNow.Format(time.RFC3339)),
		Fields: map[string]string{
			"current": titleCase(inst.RawState),
			"desired": ev.State.Title(),
		},
	})

	switch decision.Action {
	case reconcile.ActionStart:
		return r.apply(ctx, obs, res, "Starting instance", OutcomeStarted, EventInstanceStarted, r.platform.StartInstance)
	case reconcile.ActionStop:
		return r.apply(ctx, obs, res, "Stopping instance", OutcomeStopped, EventInstanceStopped, r.platform.StopInstance)
	}

	res.Outcome = OutcomeUnchanged
	obs.Event(Event{
		Type:     EventInstanceUnchanged,
		Instance: inst.ID,
		Message:  "Nothing to do",
		Fields:   map[string]string{"reason": string(decision.Reason)},
	})
	return res
}

func (r *Runner) apply(ctx context.Context, obs Observer, res Result, msg string, outcome Outcome,
	eventType EventType, do func(context.Context, string) error) Result {
	fields := map[string]string{"action": string(res.Decision.Action)}
	if r.dryRun {
		res.Outcome, res.DryRun = outcome, true
		fields["dryRun"] = "true"
		obs.Event(Event{Type: eventType, Instance: res.ID, Message: msg + " (dry run)", Fields: fields})
		return res
	}

	begin := r.clock.Now()
	err := do(ctx, res.ID)
	r.metrics.RecordAction(string(res.Decision.Action), err, r.clock.Now().Sub(begin))
	if err != nil {
		res.Outcome, res.Err = OutcomeFailed, err
		if errors.Is(err, inventory.ErrInstanceNotFound) {
			fields["reason"] = "instance no longer exists"
		}
		obs.Event(Event{Type: EventInstanceFailed, Instance: res.ID, Message: msg + " failed", Err: err, Fields: fields})
		return res
	}

	res.Outcome = outcome
	obs.Event(Event{Type: eventType, Instance: res.ID, Message: msg, Fields: fields})
	return res
}

// titleCase upper-cases the first letter of a provider state, e.g. "running" -> "Running".
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
