// Package metrics defines the Prometheus collectors for property resolution
// and the HTTP API.
package metrics
