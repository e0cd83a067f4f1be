// Package server serves block applications over HTTP.
//
// A Server renders the root instance as a full page on GET /, holds live
// sessions on GET /live, and exposes Prometheus metrics on GET /metrics.
//
// Each live session owns a server-side document with a freshly mounted
// instance. The client receives the starting markup in a hello frame and
// from then on every update flushes as one sequenced patch frame, so the
// client applies exactly the mutations the dirty check produced.
package server
