// Package hcloud lists Hetzner Cloud servers and powers them on and off.
//
// [RealClient] implements inventory.Platform on top of hcloud-go:
//
//   - client.go: interfaces and construction options
//   - server.go: listing servers and issuing power actions
//   - state.go: mapping server status to the scheduler's observed state
//   - errors.go: error classification for retry logic
//
// Schedules are read from server labels. Hetzner label values cannot contain
// '|', so schedule values use '_' between days (see package labels).
//
// Power actions are fire-and-forget: the returned hcloud action is not
// awaited. Locked, conflicting and rate-limited requests are retried with
// exponential backoff; every other API error is returned immediately.
//
// # Example Usage
//
//	client := hcloud.NewRealClient(token,
//	    hcloud.WithLabelSelector("scheduler=enabled"),
//	)
//	servers, err := client.ListInstances(ctx)
package hcloud
