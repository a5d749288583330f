// Package election provides leader election for assignment coordination.
//
// Exactly one node at a time may calculate and publish shard assignments.
// The built-in implementation uses atomic NATS KV operations: Create wins
// the initial race, Update with a revision check renews the lease, and the
// bucket TTL guarantees automatic failover when a leader crashes.
//
// Custom agents (Consul, etcd, Zookeeper) can replace it by implementing
// types.ElectionAgent.
package election
