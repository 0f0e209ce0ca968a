package hcloud

import (
	"context"

	"github.com/imamik/instance-scheduler/internal/inventory"
)

// ServerLister lists servers as scheduler instances.
type ServerLister interface {
	ListInstances(ctx context.Context) ([]inventory.Instance, error)
}

// PowerManager powers servers on and off by ID.
type PowerManager interface {
	StartInstance(ctx context.Context, id string) error
	StopInstance(ctx context.Context, id string) error
}

var (
	_ ServerLister       = (*RealClient)(nil)
	_ PowerManager       = (*RealClient)(nil)
	_ inventory.Platform = (*RealClient)(nil)
)
