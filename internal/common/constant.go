package common

// AuthorizationHeaderName is the HTTP header carrying the bearer secret.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "
