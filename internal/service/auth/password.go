package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Stored passwords are "hex(hash).hex(salt)". scrypt keeps brute-forcing
// expensive; the parameters match the interactive-login recommendation.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16

	hashSeparator = "."
)

func hashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	return hex.EncodeToString(hash) + hashSeparator + hex.EncodeToString(salt), nil
}

// checkPasswordHash re-derives the key with the stored salt and compares in
// constant time. Malformed stored values fail verification, they never panic.
func checkPasswordHash(password, stored string) bool {
	hashed, salt, ok := strings.Cut(stored, hashSeparator)
	if !ok || hashed == "" || salt == "" {
		return false
	}

	hashedBytes, err := hex.DecodeString(hashed)
	if err != nil {
		return false
	}
	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}

	candidate, err := scrypt.Key([]byte(password), saltBytes, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(hashedBytes, candidate) == 1
}
