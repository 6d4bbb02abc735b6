// Package parts implements the server side of the parts inventory API:
// the part entity, an in-memory store, the service layer, and the Gin HTTP
// handlers exposing search and CRUD endpoints.
package parts
