package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "asset-manager context key " + string(c)
}

const (
	// UserIDKey carries the calling user id taken from the request path.
	UserIDKey = contextKey("userID")
	// ServerNameKey carries the name of the server instance serving the request.
	ServerNameKey = contextKey("serverName")
	// RequestIDKey carries the X-Request-ID assigned by the request id middleware.
	RequestIDKey = contextKey("requestID")
	// TokenUserIDKey carries the user id found in a validated bearer token.
	TokenUserIDKey = contextKey("tokenUserID")
	ComponentKey   = contextKey("component")
	OperationKey   = contextKey("operation")
)
