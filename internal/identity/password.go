package identity

import "golang.org/x/crypto/bcrypt"

// HashPassword applies a salted, computationally expensive one-way transform.
// Each call generates a fresh random salt, so repeated calls on the same
// input yield different digests.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword recomputes the hash using the salt embedded in digest and
// compares in constant time. A mismatch returns false, never an error.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
