// Package cryptox implements password hashing for stored user credentials.
//
// Hashes use PBKDF2-HMAC-SHA256 with 100000 iterations and are stored as
// "<salt>$<hex digest>", where salt is a random 32 character hex string that
// is fed to PBKDF2 as its UTF-8 bytes.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/dmitrijs2005/tpforum/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	Iterations = 100000
	KeyLength  = sha256.Size
	saltBytes  = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword returns a freshly salted hash of password.
func HashPassword(password []byte) (string, error) {
	salt, err := common.MakeRandHexString(saltBytes)
	if err != nil {
		return "", err
	}
	return salt + "$" + digest(password, salt, Iterations), nil
}

// VerifyPassword reports whether password matches encoded. A hash that is
// not in "<salt>$<hex>" form yields ErrMalformedHash.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	salt, want, ok := strings.Cut(encoded, "$")
	if !ok || salt == "" || strings.Contains(want, "$") {
		return false, ErrMalformedHash
	}
	if _, err := hex.DecodeString(want); err != nil || want == "" {
		return false, ErrMalformedHash
	}
	got := digest(password, salt, Iterations)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1, nil
}

func digest(password []byte, salt string, iterations int) string {
	return hex.EncodeToString(pbkdf2.Key(password, []byte(salt), iterations, KeyLength, sha256.New))
}
