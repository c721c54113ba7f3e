package auth

// JWTVerifier validates bearer tokens for the auth middleware.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims; domain.ErrUnauthorized on any failure
	VerifyToken(tokenString string) (*SupabaseClaims, error)

	// Close releases any resources held by the verifier
	Close() error
}
