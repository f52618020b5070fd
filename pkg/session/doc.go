/*
Package session implements session management and persistence orchestration.

It serializes concurrent access to wizard sessions across requests and
replicas, combining per-session local locks with an optional distributed
locker, and owns the timers that return submitted sessions to their first
step.
*/
package session
