package ec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/instance-scheduler/internal/reconcile"
)

// observedState maps an EC2 instance state onto the scheduler's observed
// state. Pending, stopping, shutting-down and terminated pass through and are
// treated as transitional.
func observedState(state *types.InstanceState) reconcile.ObservedState {
	if state == nil {
		return reconcile.ObservedState("unknown")
	}
	switch state.Name {
	case types.InstanceStateNameRunning:
		return reconcile.ObservedRunning
	case types.InstanceStateNameStopped:
		return reconcile.ObservedStopped
	}
	return reconcile.ObservedState(state.Name)
}
