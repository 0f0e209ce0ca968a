package hcloud

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/instance-scheduler/internal/inventory"
	"github.com/imamik/instance-scheduler/internal/util/labels"
	"github.com/imamik/instance-scheduler/internal/util/retry"
)

// ListInstances returns all servers visible to the token, filtered by the
// configured label selector. Schedule label values are decoded to the
// canonical pipe-delimited form.
func (c *RealClient) ListInstances(ctx context.Context) ([]inventory.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.List)
	defer cancel()

	servers, err := c.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: c.labelSelector},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	instances := make([]inventory.Instance, 0, len(servers))
	for _, s := range servers {
		instances = append(instances, inventory.Instance{
			ID:       strconv.FormatInt(s.ID, 10),
			Name:     s.Name,
			State:    observedState(s.Status),
			RawState: string(s.Status),
			Tags:     labels.DecodeScheduleLabels(s.Labels),
		})
	}
	return instances, nil
}

// StartInstance powers on the server.
func (c *RealClient) StartInstance(ctx context.Context, id string) error {
	return c.powerAction(ctx, id, "poweron", c.client.Server.Poweron)
}

// StopInstance shuts the server down, or cuts power when configured to.
func (c *RealClient) StopInstance(ctx context.Context, id string) error {
	if c.poweroff {
		return c.powerAction(ctx, id, "poweroff", c.client.Server.Poweroff)
	}
	return c.powerAction(ctx, id, "shutdown", c.client.Server.Shutdown)
}

type serverAction func(ctx context.Context, server *hcloud.Server) (*hcloud.Action, *hcloud.Response, error)

// powerAction issues a server action with retry. The action is accepted by
// the API before this returns but is not awaited.
func (c *RealClient) powerAction(ctx context.Context, id, name string, do serverAction) error {
	serverID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid server id: %s", id)
	}
	server := &hcloud.Server{ID: serverID}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Action)
	defer cancel()

	err = retry.Do(ctx, func(ctx context.Context) error {
		_, _, err := do(ctx, server)
		if err != nil && !isRetryable(err) {
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.FromContext(ctx).V(1).Info("Retrying server action", "server", id, "action", name,
				"attempt", attempt, "delay", delay, "error", err.Error())
		}))
	if err != nil {
		if IsNotFound(err) {
			err = fmt.Errorf("%w: %w", inventory.ErrInstanceNotFound, err)
		}
		return fmt.Errorf("failed to %s server %s: %w", name, id, err)
	}
	return nil
}
