package auth

// Claims representa la identidad extraída del token.
// Solo lleva el user id: el rol se resuelve siempre desde el store
// al momento de autorizar, nunca se confía en el token para eso.
type Claims struct {
	UserID string
}
