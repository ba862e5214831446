// Package server wires the tab runtime: the SQLite journal, the command
// engine, the JSON/HTTP API and a gRPC health endpoint for readiness probes.
package server
