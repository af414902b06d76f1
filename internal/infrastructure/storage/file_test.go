package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

func TestFileStore_SaveLoadDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	creds := domain.Credentials{Email: "alisson@email.com", Password: "123456"}
	if err := store.Save(ctx, creds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != creds {
		t.Errorf("Load = %+v, want %+v", got, creds)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("file mode = %o, want 0600", perm)
		}
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoCredentials) {
		t.Errorf("Load after Delete = %v, want ErrNoCredentials", err)
	}
}

func TestFileStore_LoadAbsent(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	_, err = store.Load(context.Background())
	if !errors.Is(err, domain.ErrNoCredentials) {
		t.Errorf("Load = %v, want ErrNoCredentials", err)
	}
}

func TestFileStore_DeleteAbsentIsNoop(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Delete(context.Background()); err != nil {
		t.Errorf("Delete on absent file = %v, want nil", err)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, domain.Credentials{Email: "old@b.com", Password: "123456"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := domain.Credentials{Email: "new@b.com", Password: "654321"}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}
