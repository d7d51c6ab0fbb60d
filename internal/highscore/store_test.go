package highscore

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var quiet = log.New(io.Discard)

var base = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func at(min int) time.Time {
	return base.Add(time.Duration(min) * time.Minute)
}

func newTestStore(t *testing.T, max int) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "scores.dat"), max, quiet)
}

func mustAdd(t *testing.T, s *Store, e Entry) bool {
	t.Helper()
	ok, err := s.Add(e)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	return ok
}

func TestIsHighScore(t *testing.T) {
	s := newTestStore(t, 3)

	if !s.IsHighScore(0) {
		t.Error("any score qualifies while the table has free slots")
	}

	for i, v := range []int{50, 30, 40} {
		mustAdd(t, s, Entry{Time: at(i), Score: v, Name: "p"})
	}

	tests := []struct {
		score int
		want  bool
	}{
		{29, false},
		{30, false}, // equal to the minimum
		{31, true},
		{100, true},
	}
	for _, tc := range tests {
		if got := s.IsHighScore(tc.score); got != tc.want {
			t.Errorf("IsHighScore(%d) = %v, expected %v", tc.score, got, tc.want)
		}
	}
}

func TestAddEqualToMinimumWhenFull(t *testing.T) {
	s := newTestStore(t, 3)
	for i, v := range []int{50, 30, 40} {
		mustAdd(t, s, Entry{Time: at(i), Score: v, Name: "p"})
	}
	before := s.Entries()

	if mustAdd(t, s, Entry{Time: at(10), Score: 30, Name: "late"}) {
		t.Error("Add() of a score equal to the minimum should fail")
	}
	if !slices.EqualFunc(before, s.Entries(), func(a, b Entry) bool { return a == b }) {
		t.Error("failed Add() should leave the store unchanged")
	}
}

func TestAddOrdering(t *testing.T) {
	s := newTestStore(t, 3)

	mustAdd(t, s, Entry{Time: at(5), Score: 20, Name: "later"})
	mustAdd(t, s, Entry{Time: at(1), Score: 20, Name: "earlier"})
	mustAdd(t, s, Entry{Time: at(3), Score: 90, Name: "best"})
	mustAdd(t, s, Entry{Time: at(0), Score: 50, Name: "second"})

	var names []string
	for _, e := range s.Entries() {
		names = append(names, e.Name)
	}
	want := []string{"best", "second", "earlier"}
	if !slices.Equal(names, want) {
		t.Errorf("Entries() = %v, expected %v", names, want)
	}
}

func TestStoreInvariantsUnderRandomInserts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := Open("", 5, quiet)

	for i := range 500 {
		e := Entry{Time: at(rng.Intn(1000)), Score: rng.Intn(200), Name: "r"}
		wasHigh := s.IsHighScore(e.Score)
		added := mustAdd(t, s, e)
		if added != wasHigh {
			t.Fatalf("insert %d: Add() = %v but IsHighScore() = %v", i, added, wasHigh)
		}

		entries := s.Entries()
		if len(entries) > s.Max() {
			t.Fatalf("insert %d: %d entries exceed max %d", i, len(entries), s.Max())
		}
		if !slices.IsSortedFunc(entries, Compare) {
			t.Fatalf("insert %d: entries not sorted: %+v", i, entries)
		}
	}
}

func TestNameIsTrimmed(t *testing.T) {
	s := newTestStore(t, 3)
	mustAdd(t, s, Entry{Time: base, Score: 1, Name: "abcdefghijklmnopqrstuvwxyz"})

	if got := s.Entries()[0].Name; got != "abcdefghijklmno" {
		t.Errorf("Name = %q, expected 15 characters", got)
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.dat")
	s := Open(path, 5, quiet)
	mustAdd(t, s, Entry{Time: at(1), Score: 10, Name: "one"})
	mustAdd(t, s, Entry{Time: at(2), Score: 20, Name: "two"})

	reopened := Open(path, 5, quiet)
	got := reopened.Entries()
	if len(got) != 2 || got[0].Name != "two" || got[1].Name != "one" {
		t.Fatalf("reopened entries = %+v", got)
	}
	if !got[0].Time.Equal(at(2)) {
		t.Errorf("Time = %v, expected %v", got[0].Time, at(2))
	}

	// A smaller max truncates on load.
	if n := Open(path, 1, quiet).Len(); n != 1 {
		t.Errorf("Len() = %d with max 1", n)
	}
}

func TestCorruptFileResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.dat")
	if err := os.WriteFile(path, []byte{3, 1, 2}, 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path, 5, quiet)
	if s.Len() != 0 {
		t.Errorf("corrupt file should give an empty store, got %d entries", s.Len())
	}

	// The store still works and overwrites the bad file.
	mustAdd(t, s, Entry{Time: base, Score: 5, Name: "new"})
	if Open(path, 5, quiet).Len() != 1 {
		t.Error("Add() should replace the corrupt file")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.dat")
	s := Open(path, 5, quiet)
	mustAdd(t, s, Entry{Time: base, Score: 5, Name: "x"})

	s.Clear()

	if s.Len() != 0 {
		t.Error("Clear() should empty the store")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Clear() should delete the file, stat err = %v", err)
	}

	// Clearing again with no file must not panic.
	s.Clear()
}
