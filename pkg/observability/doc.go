/*
Package observability turns engine lifecycle hooks into Prometheus metrics.

Metrics are registered on a private registry so several instances (tests, embedded
servers) never collide on the global one. Use Handler to expose them over HTTP.
*/
package observability
