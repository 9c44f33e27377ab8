// Package server runs the enabled transports of the user service.
//
// It binds the HTTP API and the gRPC health endpoint, serves both until the
// context ends or a termination signal arrives, and then stops them
// gracefully.
package server
