package ec2

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/instance-scheduler/internal/inventory"
	"github.com/imamik/instance-scheduler/internal/util/retry"
)

// ListInstances returns every instance matching the configured filters,
// across all reservations and pages.
func (c *RealClient) ListInstances(ctx context.Context) ([]inventory.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.List)
	defer cancel()

	input := &ec2.DescribeInstancesInput{Filters: c.filters}
	paginator := ec2.NewDescribeInstancesPaginator(c.api, input)

	var instances []inventory.Instance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}
		for _, r := range page.Reservations {
			for _, inst := range r.Instances {
				instances = append(instances, toInstance(inst))
			}
		}
	}
	return instances, nil
}

func toInstance(inst types.Instance) inventory.Instance {
	tags := make(map[string]string, len(inst.Tags))
	for _, t := range inst.Tags {
		tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}

	var raw string
	if inst.State != nil {
		raw = string(inst.State.Name)
	}

	return inventory.Instance{
		ID:       aws.ToString(inst.InstanceId),
		Name:     tags["Name"],
		State:    observedState(inst.State),
		RawState: raw,
		Tags:     tags,
	}
}

// StartInstance requests the instance to start.
func (c *RealClient) StartInstance(ctx context.Context, id string) error {
	return c.powerAction(ctx, id, "start", func(ctx context.Context) error {
		_, err := c.api.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}})
		return err
	})
}

// StopInstance requests the instance to stop.
func (c *RealClient) StopInstance(ctx context.Context, id string) error {
	return c.powerAction(ctx, id, "stop", func(ctx context.Context) error {
		_, err := c.api.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}})
		return err
	})
}

func (c *RealClient) powerAction(ctx context.Context, id, name string, do func(context.Context) error) error {
	if id == "" {
		return fmt.Errorf("instance id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Action)
	defer cancel()

	err := retry.Do(ctx, func(ctx context.Context) error {
		err := do(ctx)
		if err != nil && !isRetryable(err) {
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.FromContext(ctx).V(1).Info("Retrying instance action", "instance", id, "action", name,
				"attempt", attempt, "delay", delay, "error", err.Error())
		}))
	if err != nil {
		if IsNotFound(err) {
			err = fmt.Errorf("%w: %w", inventory.ErrInstanceNotFound, err)
		}
		return fmt.Errorf("failed to %s instance %s: %w", name, id, err)
	}
	return nil
}
