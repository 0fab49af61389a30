package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/seantiz/mxm/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeTestThread(key string, n int) []model.Comment {
	base := time.Date(2026, 4, 1, 8, 0, 0, 123456789, time.UTC)
	out := make([]model.Comment, n)
	for i := range out {
		out[i] = model.Comment{
			ID:      fmt.Sprintf("%s-c%02d", key, i+1),
			Author:  "Dana Smith",
			Message: "Inspected and verified alignment.",
			TS:      base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newFileStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "threads.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// storeImpls runs a test against every Store implementation.
func storeImpls(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"sqlite":      newTestStore(t),
		"sqlite-file": newFileStore(t),
		"memory":      NewMemoryStore(),
	}
}

func assertThreadEqual(t *testing.T, got, want []model.Comment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Author != w.Author || g.Message != w.Message || !g.TS.Equal(w.TS) {
			t.Errorf("comment %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestPutAndGetThread(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := makeTestThread("WO-605-01", 5)
			if err := s.PutThread(ctx, "WO-605-01", want); err != nil {
				t.Fatalf("PutThread: %v", err)
			}
			got, err := s.GetThread(ctx, "WO-605-01")
			if err != nil {
				t.Fatalf("GetThread: %v", err)
			}
			assertThreadEqual(t, got, want)
		})
	}
}

func TestGetThreadNotFound(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetThread(context.Background(), "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("GetThread(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestEmptyThreadIsCached(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.PutThread(ctx, "job-JOB-001", nil); err != nil {
				t.Fatalf("PutThread: %v", err)
			}
			got, err := s.GetThread(ctx, "job-JOB-001")
			if err != nil {
				t.Fatalf("GetThread: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("GetThread = %#v, want empty non-nil thread", got)
			}
		})
	}
}

func TestPutThreadFirstWriteWins(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := makeTestThread("k", 2)
			if err := s.PutThread(ctx, "k", first); err != nil {
				t.Fatal(err)
			}
			if err := s.PutThread(ctx, "k", makeTestThread("k", 7)); err != nil {
				t.Fatal(err)
			}
			got, _ := s.GetThread(ctx, "k")
			assertThreadEqual(t, got, first)
		})
	}
}

func TestStats(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s.PutThread(ctx, "a", makeTestThread("a", 3))
			s.PutThread(ctx, "b", makeTestThread("b", 4))
			s.PutThread(ctx, "c", nil)

			st, err := s.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats: %v", err)
			}
			if st.Threads != 3 || st.Comments != 7 {
				t.Errorf("Stats = %+v, want 3 threads, 7 comments", st)
			}
		})
	}
}

func TestConcurrentPuts(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				key := fmt.Sprintf("WO-%d", i)
				wg.Go(func() {
					if err := s.PutThread(ctx, key, makeTestThread(key, i%4)); err != nil {
						t.Errorf("PutThread(%s): %v", key, err)
					}
				})
			}
			wg.Wait()
			st, _ := s.Stats(ctx)
			if st.Threads != 20 {
				t.Errorf("Threads = %d, want 20", st.Threads)
			}
		})
	}
}

func TestFileStoreManyConcurrentWriters(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	const writers = 100
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		key := fmt.Sprintf("WO-%03d-comments", i)
		wg.Go(func() {
			if err := s.PutThread(ctx, key, makeTestThread(key, 1+i%15)); err != nil {
				t.Errorf("PutThread(%s): %v", key, err)
			}
			if _, err := s.GetThread(ctx, key); err != nil {
				t.Errorf("GetThread(%s): %v", key, err)
			}
		})
	}
	wg.Wait()

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Threads != writers {
		t.Errorf("Threads = %d, want %d", st.Threads, writers)
	}
}

func TestConnectionPragmas(t *testing.T) {
	s := newFileStore(t)

	var timeout int
	if err := s.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("read busy_timeout: %v", err)
	}
	if timeout != busyTimeoutMS {
		t.Errorf("busy_timeout = %d, want %d", timeout, busyTimeoutMS)
	}

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{":memory:", ":memory:?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
		{"/tmp/mxm.db", "/tmp/mxm.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
		{"file:mxm.db?cache=shared", "file:mxm.db?cache=shared&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.path); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.PutThread(ctx, "k", makeTestThread("k", 1))

	got, _ := s.GetThread(ctx, "k")
	got[0].Author = "mutated"

	again, _ := s.GetThread(ctx, "k")
	if again[0].Author == "mutated" {
		t.Error("cached thread mutated through GetThread result")
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(\"\") = %T, want *MemoryStore", s)
	}

	s, err = Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(:memory:) = %T, want *SQLiteStore", s)
	}
}
