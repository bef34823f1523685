// Package metrics defines the Prometheus collectors for the capture and
// segmentation pipeline and an optional HTTP server exposing them.
package metrics
