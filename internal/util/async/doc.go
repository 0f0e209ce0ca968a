// Package async provides utilities for parallel task execution.
//
// The runner uses it to reconcile independent instances concurrently while
// keeping results in input order.
package async
