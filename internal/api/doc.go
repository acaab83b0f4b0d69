// Package api implements the HTTP client for the AnyMoment calendar
// service.
//
// Authentication is a bearer token carried in the service's custom
// x-auth-token header. Client transparently resolves the token from the
// token store, and on a 401 response refreshes it via the token-extension
// endpoint and retries the request exactly once; the outcome of the retried
// request is final. Failures map onto a small taxonomy of typed errors, see
// Error and ErrorKind.
package api
