// Package observe provides observability primitives for pattern compilation
// and caching.
//
// It carries a JSON structured Logger, OpenTelemetry Metrics for compiles and
// cache lookups, a Tracer that opens one span per engine build, and a
// Middleware that wraps a pattern.Compiler with all three. Exporters are
// selected by name through Config (see package exporters).
package observe
