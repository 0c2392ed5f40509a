package services

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a candidate password against a stored credential.
type CredentialVerifier interface {
	Verify(stored, candidate string) bool
}

// bcryptVerifier handles credentials stored as bcrypt hashes.
type bcryptVerifier struct{}

func (bcryptVerifier) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// plaintextVerifier handles legacy rows and the OAuth placeholder, which are
// stored as the raw value.
type plaintextVerifier struct{}

func (plaintextVerifier) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsBcryptHash reports whether stored carries a bcrypt format tag.
func IsBcryptHash(stored string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

// VerifierFor selects the verifier matching the stored credential's format.
func VerifierFor(stored string) CredentialVerifier {
	if IsBcryptHash(stored) {
		return bcryptVerifier{}
	}
	return plaintextVerifier{}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
