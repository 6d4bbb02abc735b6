// Package server provides the HTTP server for the parts API, backed by Gin
// with HTTP/2 cleartext support.
//
// Built-in middleware (server/middleware): panic recovery, request-ID
// propagation, CORS, body-size limits, token-bucket rate limiting, request
// logging, and JWT bearer authentication.
//
// Built-in endpoints (server/endpoint): /health, /alive, /ready, /version.
package server
