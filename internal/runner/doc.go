// Package runner performs one scheduling pass over a provider's inventory.
//
// For every instance it parses the schedule tags, evaluates the desired
// state, decides on a power action and issues it. Per-instance failures are
// reported through the [Observer] and counted in the [Summary]; only a failed
// inventory listing aborts the pass.
package runner
