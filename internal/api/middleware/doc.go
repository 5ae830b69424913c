// Package middleware provides the gin middleware the API surfaces
// share: CORS, per-client rate limiting, request ids, and request
// logging.
package middleware
