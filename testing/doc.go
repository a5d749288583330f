// Package testing provides test utilities for the shardassign library.
//
// This package offers helpers for setting up test environments,
// particularly embedded NATS servers for integration testing. It follows
// Go's convention of providing testing utilities in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single in-process NATS server with JetStream
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - NewTestLogger: types.Logger backed by testing.T
//
// Example usage:
//
//	import (
//	    "testing"
//	    natstest "github.com/birchmd/shardassign/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := natstest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
