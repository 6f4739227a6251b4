package crypto

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrDecrypt is set on a Result whose ciphertext could not be opened.
var ErrDecrypt = errors.New("decryption failed")

// noTTL disables the token age check; stored passwords never expire.
const noTTL = -1

// Result is the outcome of a decryption. Callers must check OK before using
// Plaintext: a failed decryption never yields the ciphertext back.
type Result struct {
	Plaintext string
	Err       error
}

func (r Result) OK() bool { return r.Err == nil }

// Cipher encrypts client passwords at rest with Fernet, the format the
// stored ciphertexts already use.
type Cipher struct {
	key *fernet.Key
}

// New parses a URL-safe base64 Fernet key.
func New(encodedKey string) (*Cipher, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}

	return &Cipher{key: key}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("encrypting: %w", err)
	}

	return string(token), nil
}

func (c *Cipher) Decrypt(ciphertext string) Result {
	if ciphertext == "" {
		return Result{Err: fmt.Errorf("%w: empty ciphertext", ErrDecrypt)}
	}

	msg := fernet.VerifyAndDecrypt([]byte(ciphertext), noTTL, []*fernet.Key{c.key})
	if msg == nil {
		return Result{Err: fmt.Errorf("%w: invalid token or wrong key", ErrDecrypt)}
	}

	return Result{Plaintext: string(msg)}
}
