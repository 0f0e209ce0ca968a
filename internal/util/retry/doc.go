// Package retry provides exponential backoff retry logic for transient failures.
//
// The [Do] function retries an operation with configurable max attempts,
// initial delay, and maximum delay. It wraps the provider power calls so a
// throttled or locked request is retried within a single run; scheduling
// decisions themselves are never retried, the next run re-evaluates them.
package retry
