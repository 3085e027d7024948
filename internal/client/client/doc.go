// Package client talks to the EduStream API over HTTP/JSON.
//
// Gateway.Do attaches the stored bearer token and, when a call is rejected
// with 401, recovers the session once (remembered credentials first, token
// refresh otherwise) before replaying the call. A failed recovery returns
// the original error and fires the registered logout hook.
//
// Status codes map to ErrUnauthorized, ErrNotFound, ErrUnavailable,
// *common.ValidationError (422) and *APIError. InitDatabase opens the local
// SQLite store and applies its migrations.
package client
