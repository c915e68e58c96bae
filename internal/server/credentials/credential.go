package credentials

import (
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/userfed/internal/common"
)

// Credential is the typed form of one stored password credential. The store
// keeps it as text, "<hashBase64>.<saltBase64>.<iterations>"; it is parsed
// into this struct right after reading and serialized back only at the write
// boundary.
type Credential struct {
	Hash       []byte
	Salt       []byte
	Iterations int
}

// New derives a fresh credential for the password using the current defaults
// and a newly generated random salt.
func New(password string) (*Credential, error) {
	salt, err := GenerateSalt(DefaultSaltSize)
	if err != nil {
		return nil, err
	}

	hash, err := Hash(password, salt, DefaultIterations, DefaultKeySize)
	if err != nil {
		return nil, err
	}

	return &Credential{Hash: hash, Salt: salt, Iterations: DefaultIterations}, nil
}

// Parse decodes the three-segment stored form. Any other segment count, a
// non-numeric or non-positive iteration field, or invalid base64 yields
// common.ErrMalformedCredential (or ErrMalformedEncoding for the base64
// case), never a panic.
func Parse(s string) (*Credential, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", common.ErrMalformedCredential, len(parts))
	}

	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return nil, fmt.Errorf("%w: bad iteration count %q", common.ErrMalformedCredential, parts[2])
	}

	hash, err := DecodeSegment(parts[0])
	if err != nil {
		return nil, err
	}

	salt, err := DecodeSegment(parts[1])
	if err != nil {
		return nil, err
	}

	return &Credential{Hash: hash, Salt: salt, Iterations: iterations}, nil
}

// String renders the credential in its stored three-segment form.
func (c *Credential) String() string {
	return EncodeSegment(c.Hash) + "." + EncodeSegment(c.Salt) + "." + strconv.Itoa(c.Iterations)
}

// Verify recomputes the hash of the supplied password with the credential's
// own salt and iteration count and compares it in constant time. The key is
// derived at the stored hash's length so historical hashes of any size
// verify correctly.
func (c *Credential) Verify(password string) (bool, error) {
	computed, err := Hash(password, c.Salt, c.Iterations, len(c.Hash))
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(computed, c.Hash) == 1, nil
}
