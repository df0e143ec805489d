// Package client contains the transports the forum client uses to talk to
// the outside world.
//
// # Overview
//
//  1. Authenticator: the auth endpoint contract. HTTPClient POSTs one JSON
//     request per call and decodes either the success body or the error body.
//  2. HealthChecker: a liveness check. GRPCHealthClient asks the server's
//     grpc.health.v1 service whether it is SERVING.
//
// # Error Handling
//
// Failures are reported as values callers match with errors.Is / errors.As:
// ErrUnavailable for transport failures, models.ErrMalformedResponse for
// bodies that break the contract, and *ServerError for non-2xx responses.
//
// Neither transport retries. Every call is a single attempt.
package client
