package auth

// TokenIssuer firma un token portador ligado a un usuario.
// Este servicio emite sus propios tokens (login), por eso el port
// vive junto al verifier.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}
