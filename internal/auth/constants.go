package auth

const (
	ContextKeyUsername = "username"
	ContextKeyToken    = "token"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgNoTokenProvided         = "No token were provided"
	msgInvalidToken            = "Invalid Token"
	msgNotAllowed              = "You are not allowed to do that"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)
