// Package partsapi is the typed SDK for the parts inventory API. It wraps
// the generic httpclient with part-shaped operations: search, fetch by id,
// create, update, and delete. Client construction goes through NewClient or
// one of the environment presets in factory.go.
package partsapi
