package ports

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Compare reports whether plaintext matches hash in constant time.
	Compare(hash, plaintext string) bool
}
