// Package reconcile decides which power action, if any, converges an
// instance's observed run-state with the state its schedule implies.
package reconcile

import "github.com/imamik/instance-scheduler/internal/schedule"

// ObservedState is an instance's run-state as reported by its provider,
// normalized to "running" and "stopped" where the provider uses other names.
type ObservedState string

const (
	ObservedRunning ObservedState = "running"
	ObservedStopped ObservedState = "stopped"
)

// Action is the power operation to issue for an instance.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
	ActionNoop  Action = "noop"
)

// Reason explains a decision.
type Reason string

const (
	ReasonConverge     Reason = "converge"
	ReasonInSync       Reason = "in-sync"
	ReasonNoOpinion    Reason = "no-opinion"
	ReasonTransitional Reason = "transitional"
)

// Decision is the outcome of comparing observed and desired state.
type Decision struct {
	Observed ObservedState
	Desired  schedule.DesiredState
	Action   Action
	Reason   Reason
}

// IsTransitional reports whether the instance is in neither a settled running
// nor a settled stopped state, e.g. pending, stopping or terminated. Such
// instances are left alone so a power call never races an in-flight transition.
func IsTransitional(observed ObservedState) bool {
	return observed != ObservedRunning && observed != ObservedStopped
}

// Decide returns the action that converges observed towards desired.
func Decide(observed ObservedState, desired schedule.DesiredState) Decision {
	d := Decision{Observed: observed, Desired: desired, Action: ActionNoop}

	switch {
	case IsTransitional(observed):
		d.Reason = ReasonTransitional
	case desired == schedule.DesiredNone:
		d.Reason = ReasonNoOpinion
	case observed == ObservedStopped && desired == schedule.DesiredRunning:
		d.Action, d.Reason = ActionStart, ReasonConverge
	case observed == ObservedRunning && desired == schedule.DesiredStopped:
		d.Action, d.Reason = ActionStop, ReasonConverge
	default:
		d.Reason = ReasonInSync
	}

	return d
}
