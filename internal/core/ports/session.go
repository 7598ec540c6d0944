package ports

// SessionTokens issues and verifies the signed credential carried in the
// session cookie. Verify returns domain.ErrInvalidToken on any failure.
type SessionTokens interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
