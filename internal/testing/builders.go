package testing

import (
	"maps"
	"strings"

	"github.com/imamik/instance-scheduler/internal/inventory"
	"github.com/imamik/instance-scheduler/internal/reconcile"
)

// InstanceBuilder provides a fluent interface for constructing test instances.
// Each method returns a new builder (immutable) for chaining.
type InstanceBuilder struct {
	inst inventory.Instance
}

// NewInstanceBuilder creates a running instance with the given ID and no tags.
func NewInstanceBuilder(id string) *InstanceBuilder {
	return &InstanceBuilder{
		inst: inventory.Instance{
			ID:       id,
			Name:     id,
			State:    reconcile.ObservedRunning,
			RawState: string(reconcile.ObservedRunning),
			Tags:     map[string]string{},
		},
	}
}

// Running sets the observed state to running.
func (b *InstanceBuilder) Running() *InstanceBuilder {
	return b.WithState(reconcile.ObservedRunning)
}

// Stopped sets the observed state to stopped.
func (b *InstanceBuilder) Stopped() *InstanceBuilder {
	return b.WithState(reconcile.ObservedStopped)
}

// WithState sets an arbitrary observed state, e.g. "pending".
func (b *InstanceBuilder) WithState(state reconcile.ObservedState) *InstanceBuilder {
	nb := b.clone()
	nb.inst.State = state
	nb.inst.RawState = string(state)
	return nb
}

// WithTag adds a single tag.
func (b *InstanceBuilder) WithTag(key, value string) *InstanceBuilder {
	nb := b.clone()
	nb.inst.Tags[key] = value
	return nb
}

// WithSchedule adds start and stop tags for timezone tz. An empty value
// omits that side.
func (b *InstanceBuilder) WithSchedule(tz, start, stop string) *InstanceBuilder {
	nb := b
	if start != "" {
		nb = nb.WithTag("StartTime-"+tz+"-SMTWTFS", start)
	}
	if stop != "" {
		nb = nb.WithTag("StopTime-"+tz+"-SMTWTFS", stop)
	}
	return nb
}

// Build returns a copy of the instance.
func (b *InstanceBuilder) Build() inventory.Instance {
	return b.clone().inst
}

func (b *InstanceBuilder) clone() *InstanceBuilder {
	inst := b.inst
	inst.Tags = maps.Clone(b.inst.Tags)
	if inst.Tags == nil {
		inst.Tags = map[string]string{}
	}
	return &InstanceBuilder{inst: inst}
}

// Everyday returns a schedule value with seg on all seven days.
func Everyday(seg string) string {
	return Week(seg, seg, seg, seg, seg, seg, seg)
}

// Week joins seven day segments, Sunday first.
func Week(sun, mon, tue, wed, thu, fri, sat string) string {
	return strings.Join([]string{sun, mon, tue, wed, thu, fri, sat}, "|")
}
