package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// EnvelopePrefix marks an encrypted run input.
const EnvelopePrefix = "__encrypted__:"

// ErrNotEncrypted is returned when a loaded record carries no envelope.
var ErrNotEncrypted = errors.New("run is missing encrypted data envelope")

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
	next   ports.RunStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals runs with AES-GCM.
// The stored record keeps automaton, verdict and acceptance visible for
// monitoring; input, trace and offending symbol only exist in the envelope.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	return func(next ports.RunStore) ports.RunStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, record *domain.RunRecord) error {
	plainText, err := json.Marshal(record.Run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt run: %w", err)
	}

	envelope := &domain.RunRecord{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		Run: domain.Run{
			Automaton: record.Run.Automaton,
			Input:     EnvelopePrefix + base64.StdEncoding.EncodeToString(ciphertext),
			Accepted:  record.Run.Accepted,
			Verdict:   record.Run.Verdict,
		},
	}
	return m.next.Save(ctx, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	envelope, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, ok := strings.CutPrefix(envelope.Run.Input, EnvelopePrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotEncrypted, id)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt run: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal(plainText, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted run: %w", err)
	}

	return &domain.RunRecord{ID: envelope.ID, Run: run, CreatedAt: envelope.CreatedAt}, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
