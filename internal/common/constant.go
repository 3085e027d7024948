// Package common contains shared constants and sentinel errors used across
// EduStream components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session token on
// outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed back by the server for log correlation.
const RequestIDHeaderName = "X-Request-Id"
