// Package http implements the local status API of the console.
//
// It exposes engine health, the operator journal, build information and
// Prometheus metrics over a small chi router. Request tracing, access
// logging and response compression are handled by middleware in this
// package.
package http
