// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - InstanceBuilder: Fluent builder for inventory instances with schedule tags
//   - MockPlatform: testify mock implementing inventory.Platform
//   - Week: helpers for building seven-segment schedule values
//
// Usage:
//
//	inst := testing.NewInstanceBuilder("i-123").
//	    Stopped().
//	    WithSchedule("UTC", testing.Everyday("08h00"), testing.Everyday("18h00")).
//	    Build()
package testing
