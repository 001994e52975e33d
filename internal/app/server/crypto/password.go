package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Scheme = "pbkdf2-sha256"

	DefaultRounds  = 29000
	DefaultSaltLen = 16
	DefaultKeyLen  = 32
)

var ErrInvalidHash = errors.New("invalid password hash")

// ab64 is the "adapted base64" used by modular crypt strings: standard alphabet,
// no padding, '.' in place of '+'.
var ab64 = base64.RawStdEncoding

func ab64Encode(b []byte) string {
	return strings.ReplaceAll(ab64.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return ab64.DecodeString(strings.ReplaceAll(s, ".", "+"))
}

// PasswordHasher produces $pbkdf2-sha256$<rounds>$<salt>$<hash> strings.
// Legacy bcrypt hashes are accepted by Verify but never produced.
type PasswordHasher struct {
	Rounds  int
	SaltLen int
	KeyLen  int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		Rounds:  DefaultRounds,
		SaltLen: DefaultSaltLen,
		KeyLen:  DefaultKeyLen,
	}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, h.Rounds, h.KeyLen, sha256.New)

	return fmt.Sprintf("$%s$%d$%s$%s", pbkdf2Scheme, h.Rounds, ab64Encode(salt), ab64Encode(key)), nil
}

// Verify reports whether password matches encoded. A malformed hash is an error,
// a mismatch is not.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$"+pbkdf2Scheme+"$"):
		return verifyPBKDF2(password, encoded)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
		return true, nil
	default:
		return false, ErrInvalidHash
	}
}

func verifyPBKDF2(password, encoded string) (bool, error) {
	// "", scheme, rounds, salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return false, ErrInvalidHash
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds <= 0 {
		return false, ErrInvalidHash
	}

	salt, err := ab64Decode(parts[3])
	if err != nil {
		return false, ErrInvalidHash
	}

	want, err := ab64Decode(parts[4])
	if err != nil || len(want) == 0 {
		return false, ErrInvalidHash
	}

	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
