package services

// TokenIssuer mints and checks session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
	Refresh(token string) (string, error)
}

// PasswordHasher hashes passwords and checks candidates against a hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
