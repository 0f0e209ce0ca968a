// Package inventory defines the provider-neutral view of scheduled instances
// and the interfaces cloud platforms implement to list and power them.
package inventory

import (
	"context"
	"errors"

	"github.com/imamik/instance-scheduler/internal/reconcile"
)

// ErrInstanceNotFound is wrapped by actuators when the provider no longer
// knows the instance, typically because it was deleted after listing.
var ErrInstanceNotFound = errors.New("instance not found")

// Instance is a compute instance as reported by a provider.
type Instance struct {
	ID   string
	Name string
	// State is the normalized run-state; RawState is the provider's own term.
	State    reconcile.ObservedState
	RawState string
	Tags     map[string]string
}

// Lister enumerates instances together with their tags.
type Lister interface {
	ListInstances(ctx context.Context) ([]Instance, error)
}

// Actuator issues power requests. Calls return once the provider has
// accepted the request; they do not wait for the instance to settle.
type Actuator interface {
	StartInstance(ctx context.Context, id string) error
	StopInstance(ctx context.Context, id string) error
}

// Platform combines listing and actuation for one provider.
type Platform interface {
	Lister
	Actuator
	// Name identifies the provider in logs and metrics (e.g. "aws", "hcloud").
	Name() string
}
