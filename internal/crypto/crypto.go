package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength       = 16     // 128-bit salt
	KeyLength        = 32     // 256-bit derived key
	TokenLength      = 32     // session token entropy in bytes
	PBKDF2Iterations = 310000 // OWASP 2025 recommendation

	hashAlgorithm = "pbkdf2_sha256"
)

// ErrMalformedHash is returned when a stored password hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// GenerateRandomBytes generates cryptographically secure random bytes
func GenerateRandomBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// GenerateSalt generates a 16-byte (128-bit) salt
func GenerateSalt() ([]byte, error) {
	return GenerateRandomBytes(SaltLength)
}

// GenerateToken returns a hex-encoded random session token.
func GenerateToken() (string, error) {
	b, err := GenerateRandomBytes(TokenLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// DeriveKey derives a 256-bit key from password using PBKDF2-SHA256
func DeriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeyLength, sha256.New)
}

// HashPassword hashes password with a fresh salt using PBKDF2Iterations.
func HashPassword(password string) (string, error) {
	return HashPasswordWithIterations(password, PBKDF2Iterations)
}

// HashPasswordWithIterations hashes password into the self-describing form
// "pbkdf2_sha256$<iterations>$<salt>$<key>" with base64 salt and key.
func HashPasswordWithIterations(password string, iterations int) (string, error) {
	if iterations < 1 {
		return "", fmt.Errorf("invalid iteration count %d", iterations)
	}
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	key := DeriveKey(password, salt, iterations)
	return strings.Join([]string{
		hashAlgorithm,
		strconv.Itoa(iterations),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, "$"), nil
}

// VerifyPassword reports whether password matches encoded, comparing in
// constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != hashAlgorithm {
		return false, ErrMalformedHash
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < 1 {
		return false, ErrMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(want) != KeyLength {
		return false, ErrMalformedHash
	}

	got := DeriveKey(password, salt, iterations)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
