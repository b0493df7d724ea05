package backend

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
)

const saltySalt = "salty-convene"

// HashPassword hashes the password using bcrypt.
func HashPassword(password string) (string, error) {
	crypt, err := bcrypt.GenerateFromPassword([]byte(password+saltySalt), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(crypt), nil
}

// VerifyPassword verifies the password against the hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+saltySalt))
	return err == nil
}

// GenerateToken returns a random unique participant token.
//
// Tokens are drawn from a cryptographically secure source and are never
// derived from meeting or contact identifiers.
func GenerateToken() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		log.Error("unable to generate participant token")
		return ""
	}

	return "cv_" + hex.EncodeToString(buf)
}
