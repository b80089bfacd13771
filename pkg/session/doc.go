/*
Package session provides concurrency control for session state access.

The Manager serializes read-merge-write cycles per session ID using
refcounted in-process mutexes, optionally combined with a distributed lock
(ports.DistributedLocker) when multiple replicas share one store.
*/
package session
