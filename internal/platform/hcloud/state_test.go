package hcloud

import (
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"

	"github.com/imamik/instance-scheduler/internal/config"
	"github.com/imamik/instance-scheduler/internal/reconcile"
)

func TestObservedState(t *testing.T) {
	t.Parallel()
	assert.Equal(t, reconcile.ObservedRunning, observedState(hcloud.ServerStatusRunning))
	assert.Equal(t, reconcile.ObservedStopped, observedState(hcloud.ServerStatusOff))
	for _, s := range []hcloud.ServerStatus{
		hcloud.ServerStatusStarting,
		hcloud.ServerStatusStopping,
		hcloud.ServerStatusInitializing,
		hcloud.ServerStatusMigrating,
	} {
		got := observedState(s)
		assert.True(t, reconcile.IsTransitional(got), string(s))
		assert.Equal(t, string(s), string(got))
	}
}

func TestNewRealClientFromConfig(t *testing.T) {
	t.Parallel()
	c := NewRealClientFromConfig(config.HCloudConfig{
		Token:         "t",
		Endpoint:      "http://127.0.0.1:1/v1",
		LabelSelector: "env=prod",
		Poweroff:      true,
	}, &config.Timeouts{})

	assert.Equal(t, ProviderName, c.Name())
	assert.Equal(t, "env=prod", c.labelSelector)
	assert.True(t, c.poweroff)
	assert.Equal(t, "http://127.0.0.1:1/v1", c.endpoint)
	assert.NotNil(t, c.client)
}
