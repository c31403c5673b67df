// Package api serves the coupling engine over HTTP.
//
// # Routes
//
//	GET  /health      liveness and build version
//	GET  /algorithms  the algorithm registry
//	POST /couple      run an algorithm, respond with coupling groups
//	POST /render      run an algorithm, respond with an SVG, DOT or JSON artifact
//	GET  /metrics     Prometheus exposition, when a metrics handler is configured
//
// Request bodies for /couple and /render are hypergraph documents (see
// package io) with optional extra fields:
//
//	{
//	  "algorithm": "frontier-expiries",
//	  "format": "svg",
//	  "detailed": false,
//	  "showOriginal": false,
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"id": "ab", "sources": ["a"], "targets": ["b"]}]
//	}
//
// # Errors
//
// Failures are reported as {"error": {"code": ..., "message": ...}} with a
// status derived from the error code: 400 for malformed input, 413 when a
// resource limit is exceeded, 422 for an unknown algorithm.
//
// Every response carries an X-Request-ID header. A client-supplied id is
// echoed back, otherwise a random UUID is generated.
package api
