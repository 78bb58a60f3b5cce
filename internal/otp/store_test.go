package otp

import (
	"context"
	"testing"
	"time"

	"school-admin-db/pkg/errors"
)

func TestPutAndVerify(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	code, err := store.Put(ctx, "0501234567")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if len(code) != 4 {
		t.Fatalf("code length: got %d, want 4", len(code))
	}

	if err := store.Verify(ctx, "0501234567", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifyIsSingleUse(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	code, _ := store.Put(ctx, "0501234567")
	if err := store.Verify(ctx, "0501234567", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := store.Verify(ctx, "0501234567", code); err != errors.ErrOTPNotFound {
		t.Fatalf("second verify: got %v, want ErrOTPNotFound", err)
	}
}

func TestVerifyUnknownMobile(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Verify(context.Background(), "0500000000", "1234"); err != errors.ErrOTPNotFound {
		t.Fatalf("got %v, want ErrOTPNotFound", err)
	}
}

func TestVerifyWrongCodeKeepsEntry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	code, _ := store.Put(ctx, "0501234567")
	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}

	if err := store.Verify(ctx, "0501234567", wrong); err != errors.ErrOTPMismatch {
		t.Fatalf("got %v, want ErrOTPMismatch", err)
	}
	// The right code still works after a failed attempt.
	if err := store.Verify(ctx, "0501234567", code); err != nil {
		t.Fatalf("verify after mismatch: %v", err)
	}
}

func TestResendOverwritesPreviousCode(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, _ := store.Put(ctx, "0501234567")
	second, _ := store.Put(ctx, "0501234567")

	if first != second {
		if err := store.Verify(ctx, "0501234567", first); err != errors.ErrOTPMismatch {
			t.Fatalf("stale code: got %v, want ErrOTPMismatch", err)
		}
	}
	if err := store.Verify(ctx, "0501234567", second); err != nil {
		t.Fatalf("current code: %v", err)
	}
}

func TestExpiredCodeRejectedAndDeleted(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	code, _ := store.Put(ctx, "0501234567")

	// Move the clock past the five minute window.
	store.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	if err := store.Verify(ctx, "0501234567", code); err != errors.ErrOTPExpired {
		t.Fatalf("got %v, want ErrOTPExpired", err)
	}
	if err := store.Verify(ctx, "0501234567", code); err != errors.ErrOTPNotFound {
		t.Fatalf("after expiry sweep: got %v, want ErrOTPNotFound", err)
	}
}
