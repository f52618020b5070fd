package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.StateStore
	config EncryptionConfig
}

// ParseKey decodes a base64 or hex encoded AES-256 key.
func ParseKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(key) != 32 {
		key, err = hex.DecodeString(encoded)
	}
	if err != nil {
		return nil, errors.New("encryption key must be base64 or hex encoded")
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes (AES-256), got %d", len(key))
	}
	return key, nil
}

// NewEncryptionMiddleware creates a middleware that encrypts sessions using
// AES-GCM (envelope encryption). It panics if the active key is not 32 bytes.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.StateStore) ports.StateStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

// envelopeKey holds the ciphertext in the envelope's Values.
const envelopeKey = "__encrypted__"

func (m *encryptionMiddleware) Save(ctx context.Context, sessionID string, session *domain.Session) error {
	plainText, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ciphertext, err := seal(plainText, m.config.ActiveKey, sessionID)
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}

	// The envelope keeps only what monitoring needs; values, errors and the
	// confirmation stay inside the ciphertext.
	envelope := &domain.Session{
		ID:        session.ID,
		WizardID:  session.WizardID,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		Values: map[string]string{
			envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
		},
	}

	return m.next.Save(ctx, sessionID, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	envelope, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	encryptedStr, ok := envelope.Values[envelopeKey]
	if !ok {
		// Fail secure: a plain session in an encrypted store is not trusted.
		return nil, errors.New("session is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := open(ciphertext, sessionID, append([][]byte{m.config.ActiveKey}, m.config.FallbackKeys...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(plainText, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted session: %w", err)
	}
	if session.Values == nil {
		session.Values = make(map[string]string)
	}
	if session.Errors == nil {
		session.Errors = make(map[string]bool)
	}

	return &session, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// The session ID is bound as additional data, so an envelope copied under
// another session's key fails to open.

func seal(plaintext, key []byte, sessionID string) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, []byte(sessionID)), nil
}

func open(ciphertext []byte, sessionID string, keys ...[]byte) ([]byte, error) {
	for _, key := range keys {
		gcm, err := newGCM(key)
		if err != nil {
			continue
		}
		if len(ciphertext) < gcm.NonceSize() {
			return nil, errors.New("ciphertext too short")
		}
		nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
		if plain, err := gcm.Open(nil, nonce, sealed, []byte(sessionID)); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
