package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/persistence/middleware"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{"email"})
	if err != nil {
		t.Fatal(err)
	}
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	email := newRecord("email-run", "uptc-email-strict", "jdoe@uptc.edu.co")
	ident := newRecord("ident-run", "identifier", "Abc12")

	// 1. Save
	for _, r := range []*domain.RunRecord{email, ident} {
		if err := secureStore.Save(ctx, r); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	// Caller's record is not modified
	if email.Run.Input != "jdoe@uptc.edu.co" {
		t.Error("Middleware modified original record in memory!")
	}

	// 2. Load from underlying store
	stored, err := underlyingStore.Load(ctx, "email-run")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Run.Input != middleware.Mask {
		t.Errorf("Input should be masked, got: %v", stored.Run.Input)
	}
	if stored.Run.Verdict != email.Run.Verdict || stored.Run.Path() != email.Run.Path() {
		t.Errorf("Verdict and trace should be kept, got %s %s", stored.Run.Verdict, stored.Run.Path())
	}

	plain, err := underlyingStore.Load(ctx, "ident-run")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if plain.Run.Input != "Abc12" {
		t.Errorf("Identifier input shouldn't be masked, got %v", plain.Run.Input)
	}
}

func TestPIIMiddleware_InvalidPattern(t *testing.T) {
	if _, err := middleware.NewPIIMiddleware([]string{"("}); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestChain_OrderAndEncryption(t *testing.T) {
	underlyingStore := memory.NewStore()
	pii, err := middleware.NewPIIMiddleware([]string{"^uptc-"})
	if err != nil {
		t.Fatal(err)
	}
	enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if err != nil {
		t.Fatal(err)
	}
	store := middleware.Chain(underlyingStore, pii, enc)

	ctx := context.Background()
	if err := store.Save(ctx, newRecord("chained", "uptc-email-strict", "a@uptc.edu.co")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "chained")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Masked before it was sealed.
	if loaded.Run.Input != middleware.Mask {
		t.Errorf("Expected masked input after decryption, got %q", loaded.Run.Input)
	}
}
