// Package cryptox is the credential-hashing boundary of gophauth. Directory
// records never carry a raw password unless the plain scheme is configured.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hashing schemes accepted by NewHasher.
const (
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
	SchemePlain    = "plain"
)

const argon2idPrefix = "$argon2id$"

// Upper bounds for argon2id parameters read back from stored records.
// Records outside them are rejected without running the KDF.
const (
	maxArgon2Memory  = 1 << 20 // KiB, 1 GiB
	maxArgon2Time    = 16
	maxArgon2Threads = 64
)

// BcryptMaxPasswordLen is the longest password bcrypt accepts, in bytes.
const BcryptMaxPasswordLen = 72

// ErrPasswordTooLong is returned by a Hasher that cannot encode a password
// of the given length.
var ErrPasswordTooLong = errors.New("password too long")

// Hasher turns a password into an encoded credential and checks candidates
// against it.
type Hasher interface {
	Hash(password []byte) (string, error)
	Verify(encoded string, password []byte) bool
	Scheme() string
}

// NewHasher returns the Hasher for scheme.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemeArgon2id:
		return NewArgon2idHasher(), nil
	case SchemeBcrypt:
		return &BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case SchemePlain:
		return PlainHasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnknownScheme, scheme)
	}
}

// Argon2idHasher encodes credentials as
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>
// with unpadded standard base64 for salt and key.
type Argon2idHasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// NewArgon2idHasher uses 1 pass, 64 MiB, 4 lanes, a 16-byte salt and a
// 32-byte key.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

func (h *Argon2idHasher) Scheme() string { return SchemeArgon2id }

func (h *Argon2idHasher) Hash(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(h.SaltLen)
	key := argon2.IDKey(password, salt, h.Time, h.Memory, h.Threads, h.KeyLen)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix, argon2.Version, h.Memory, h.Time, h.Threads,
		enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

func (h *Argon2idHasher) Verify(encoded string, password []byte) bool {
	return verify(encoded, password, false)
}

// BcryptHasher delegates to golang.org/x/crypto/bcrypt. Passwords longer
// than BcryptMaxPasswordLen bytes fail with ErrPasswordTooLong.
type BcryptHasher struct {
	Cost int
}

func (h *BcryptHasher) Scheme() string { return SchemeBcrypt }

func (h *BcryptHasher) Hash(password []byte) (string, error) {
	if len(password) > BcryptMaxPasswordLen {
		return "", fmt.Errorf("bcrypt: %w: %d bytes, limit %d", ErrPasswordTooLong, len(password), BcryptMaxPasswordLen)
	}
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(encoded string, password []byte) bool {
	return verify(encoded, password, false)
}

// PlainHasher stores passwords as-is, for directories shared with clients
// that keep plaintext.
type PlainHasher struct{}

func (PlainHasher) Scheme() string { return SchemePlain }

func (PlainHasher) Hash(password []byte) (string, error) {
	return string(password), nil
}

func (PlainHasher) Verify(encoded string, password []byte) bool {
	return verify(encoded, password, true)
}

// verify dispatches on the encoded prefix so one directory can hold records
// written under different schemes. Anything unrecognised is treated as
// plaintext and only accepted when allowPlain is set.
func verify(encoded string, password []byte, allowPlain bool) bool {
	switch {
	case strings.HasPrefix(encoded, argon2idPrefix):
		return verifyArgon2id(encoded, password)
	case isBcrypt(encoded):
		return bcrypt.CompareHashAndPassword([]byte(encoded), password) == nil
	case allowPlain:
		return subtle.ConstantTimeCompare([]byte(encoded), password) == 1
	default:
		return false
	}
}

func isBcrypt(encoded string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, p) {
			return true
		}
	}
	return false
}

func verifyArgon2id(encoded string, password []byte) bool {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if time < 1 || time > maxArgon2Time || threads < 1 || threads > maxArgon2Threads || memory > maxArgon2Memory {
		return false
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := enc.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}

	candidate := argon2.IDKey(password, salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}
