// Package server is the HTTP read endpoint over the gloss lookup facade:
// one query operation plus a health check, with JSON responses that keep
// "not found", "bad request", and "index unavailable" distinct.
package server
