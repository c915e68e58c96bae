// Package credentials implements the password-credential scheme of the
// external user store: PBKDF2 with an HMAC-SHA-256 core, a random per-secret
// salt and an iteration count recorded next to the hash.
package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/userfed/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// Defaults applied when deriving a new credential. Verification never uses
// them: it always honors the parameters recorded in the stored value, so
// hashes written under older defaults stay valid.
const (
	DefaultIterations = 27500
	DefaultSaltSize   = 16
	DefaultKeySize    = 64
)

// Hash derives keyLen bytes from the password and salt using
// PBKDF2-HMAC-SHA-256. Identical inputs always produce identical output.
func Hash(password string, salt []byte, iterations, keyLen int) ([]byte, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations=%d", common.ErrInvalidHashParams, iterations)
	}
	if keyLen <= 0 {
		return nil, fmt.Errorf("%w: key length=%d", common.ErrInvalidHashParams, keyLen)
	}

	return pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New), nil
}

// GenerateSalt returns size cryptographically random bytes.
func GenerateSalt(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: salt size=%d", common.ErrInvalidHashParams, size)
	}

	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("reading random salt: %w", err)
	}

	return salt, nil
}

// EncodeSegment renders hash or salt bytes in the base64 form used by the
// stored credential string.
func EncodeSegment(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeSegment reverses EncodeSegment.
func DecodeSegment(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedEncoding, err)
	}
	return b, nil
}
