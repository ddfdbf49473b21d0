package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

func TestFileStoreMissingCollectionLoadsNil(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	got, err := s.Load(context.Background(), Movies)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil document, got %q", got)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestFileStoreUpdateReplacesDocument(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	if err := s.Update(ctx, Users, func(cur []byte) ([]byte, error) {
		if cur != nil {
			t.Fatalf("first update should see nil, got %q", cur)
		}
		return []byte(`[1]`), nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Update(ctx, Users, func(cur []byte) ([]byte, error) {
		if string(cur) != `[1]` {
			t.Fatalf("second update saw %q", cur)
		}
		return []byte(`[1,2]`), nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(s.Dir(), "users.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) != `[1,2]` {
		t.Fatalf("file holds %q", raw)
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFileStoreUpdateErrorKeepsDocument(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	_ = s.Update(ctx, Reviews, func([]byte) ([]byte, error) { return []byte(`["a"]`), nil })

	boom := errors.New("boom")
	if err := s.Update(ctx, Reviews, func([]byte) ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := s.Load(ctx, Reviews)
	if string(got) != `["a"]` {
		t.Fatalf("document changed after failed update: %q", got)
	}
}

func TestFileStoreSerialisesWriters(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	const writers = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, Movies, func(cur []byte) ([]byte, error) {
				n := 0
				if cur != nil {
					n, _ = strconv.Atoi(string(cur))
				}
				return []byte(strconv.Itoa(n + 1)), nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := s.Load(ctx, Movies)
	if string(got) != strconv.Itoa(writers) {
		t.Fatalf("lost updates: counter = %s, want %d", got, writers)
	}
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = s.Update(ctx, Movies, func([]byte) ([]byte, error) { called = true; return nil, nil })
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected cancellation before fn, err=%v called=%v", err, called)
	}
}
