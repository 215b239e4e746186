// Package common contains shared constants and sentinel errors used across
// service components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// requests to protected routes.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the auth scheme expected in the Authorization header.
const BearerScheme = "Bearer"
