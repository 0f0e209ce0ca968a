package hcloud

import (
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/instance-scheduler/internal/reconcile"
)

// observedState maps a server status onto the scheduler's observed state.
// Hetzner calls a stopped server "off"; every status other than running and
// off (starting, stopping, migrating, rebuilding, ...) is passed through and
// treated as transitional.
func observedState(status hcloud.ServerStatus) reconcile.ObservedState {
	switch status {
	case hcloud.ServerStatusRunning:
		return reconcile.ObservedRunning
	case hcloud.ServerStatusOff:
		return reconcile.ObservedStopped
	}
	return reconcile.ObservedState(status)
}
