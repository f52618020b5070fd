/*
Package observability provides lifecycle hooks for auditing wizard sessions.

LoggingHooks writes one structured record per step transition and
submission; combine it with other hooks (such as Prometheus collectors) via
domain.LifecycleHooks.Merge.
*/
package observability
