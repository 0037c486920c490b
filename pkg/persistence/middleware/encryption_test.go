package middleware_test

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func newRecord(id, automaton, input string) *domain.RunRecord {
	var a *domain.Automaton
	switch automaton {
	case "uptc-email-strict":
		a = catalog.EmailStrict()
	default:
		a = catalog.Identifier()
	}
	return &domain.RunRecord{ID: id, Run: runtime.Run(a, input), CreatedAt: time.Unix(1700000000, 0).UTC()}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if err != nil {
		t.Fatal(err)
	}
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	original := newRecord("run-1", "identifier", "Secret42")

	// 1. Save
	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. The underlying store only sees the envelope
	stored, err := underlyingStore.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if strings.Contains(stored.Run.Input, "Secret42") {
		t.Fatalf("Expected input to be hidden, found: %v", stored.Run.Input)
	}
	if !strings.HasPrefix(stored.Run.Input, middleware.EnvelopePrefix) {
		t.Fatalf("Expected envelope prefix, got %q", stored.Run.Input)
	}
	if len(stored.Run.Trace) != 0 {
		t.Errorf("Expected trace to be hidden, got %v", stored.Run.Trace)
	}
	if stored.Run.Verdict != domain.VerdictAccepted {
		t.Errorf("Expected verdict to stay visible, got %s", stored.Run.Verdict)
	}

	// 3. Load via middleware
	loaded, err := secureStore.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Run.Input != "Secret42" {
		t.Errorf("Expected 'Secret42', got %v", loaded.Run.Input)
	}
	if loaded.Run.Path() != original.Run.Path() {
		t.Errorf("Expected path %q, got %q", original.Run.Path(), loaded.Run.Path())
	}
	if !loaded.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("Expected CreatedAt %v, got %v", original.CreatedAt, loaded.CreatedAt)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	mwOld, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	if err != nil {
		t.Fatal(err)
	}
	secureStoreOld := mwOld(underlyingStore)

	ctx := context.Background()

	// 1. Save with OLD key
	if err := secureStoreOld.Save(ctx, newRecord("rotation", "identifier", "Old1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Load with NEW key (Active) + OLD key (Fallback)
	mwNew, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	if err != nil {
		t.Fatal(err)
	}
	secureStoreNew := mwNew(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, "rotation")
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.Run.Input != "Old1" {
		t.Errorf("Decryption with fallback key failed")
	}

	// 3. Save again with the NEW key
	if err := secureStoreNew.Save(ctx, newRecord("rotation", "identifier", "New2")); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	// 4. The OLD key alone can no longer read it
	if _, err := secureStoreOld.Load(ctx, "rotation"); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_RejectsPlainRecords(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := underlyingStore.Save(ctx, newRecord("plain", "identifier", "Abc1")); err != nil {
		t.Fatal(err)
	}

	_, err = mw(underlyingStore).Load(ctx, "plain")
	if !errors.Is(err, middleware.ErrNotEncrypted) {
		t.Errorf("Expected ErrNotEncrypted, got %v", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	if err == nil {
		t.Error("Expected error for invalid key size")
	}
}

func TestEncryptionMiddleware_UndecodableInput(t *testing.T) {
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if err != nil {
		t.Fatal(err)
	}
	secureStore := mw(memory.NewStore())
	ctx := context.Background()

	original := newRecord("run-bad-utf8", "identifier", "A\xff1")
	if original.Run.Offending == nil {
		t.Fatal("Expected the run to report an offending symbol")
	}
	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := secureStore.Load(ctx, "run-bad-utf8")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Run.Verdict != original.Run.Verdict {
		t.Errorf("Expected verdict %s, got %s", original.Run.Verdict, loaded.Run.Verdict)
	}
	if loaded.Run.Offending == nil || *loaded.Run.Offending != domain.Symbol('\uFFFD') {
		t.Errorf("Expected offending U+FFFD, got %v", loaded.Run.Offending)
	}
}
