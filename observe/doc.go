// Package observe provides observability primitives for keep-alive
// controllers.
//
// It is a pure instrumentation library: no caching, no rendering, no I/O
// beyond exporter setup. A Recorder built from an Observer is handed to a
// keepalive.Controller, which reports every render pass, cache fill and
// removal through it.
package observe
