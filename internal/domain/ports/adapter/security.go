package adapter

// PasswordHasher hides the concrete credential hashing scheme from use cases.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}
