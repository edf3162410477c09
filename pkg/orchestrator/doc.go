// Package orchestrator wires the schema source → transformer → form →
// values → renderer pipeline behind a single entry point.
package orchestrator
