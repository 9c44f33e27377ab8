// Package http implements the HTTP transport of the user lifecycle API.
//
// It wires chi routes for listing, creating, updating and deleting users,
// decodes request bodies, maps service errors to status codes and carries
// the request-scoped middleware: trace ids, access logging, panic recovery,
// response compression and per-request timeouts.
package http
