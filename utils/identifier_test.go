package utils

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestFormatCustomID(t *testing.T) {
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	t.Run("known type", func(t *testing.T) {
		got := FormatCustomID(date, 1, "Calibracion", "ACME")
		if got != "2608291 C ACME" {
			t.Fatalf("expected %q, got %q", "2608291 C ACME", got)
		}
	})

	t.Run("unknown type maps to question mark", func(t *testing.T) {
		got := FormatCustomID(date, 3, "limpieza", "ACME")
		if got != "2608293 ? ACME" {
			t.Fatalf("expected %q, got %q", "2608293 ? ACME", got)
		}
	})
}

func TestTypeCode(t *testing.T) {
	cases := map[string]string{
		"Calibracion":   "C",
		"ensayo":        "E",
		"MANTENIMIENTO": "M",
		"verificacion":  "V",
		"otro":          "?",
		"":              "?",
	}
	for input, want := range cases {
		if got := TypeCode(input); got != want {
			t.Fatalf("TypeCode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDecodeCustomID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
		id := FormatCustomID(date, 12, "Ensayo", "LAB-01")

		parts, err := DecodeCustomID(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !parts.Date.Equal(date) {
			t.Fatalf("expected date %v, got %v", date, parts.Date)
		}
		if parts.Sequence != 12 {
			t.Fatalf("expected sequence 12, got %d", parts.Sequence)
		}
		if parts.TypeCode != "E" {
			t.Fatalf("expected type code E, got %q", parts.TypeCode)
		}
		if parts.ClientCode != "LAB-01" {
			t.Fatalf("expected client code LAB-01, got %q", parts.ClientCode)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, id := range []string{"", "garbage", "260829 C ACME", "2608290 C ACME", "2608291 C"} {
			if _, err := DecodeCustomID(id); err == nil {
				t.Fatalf("expected error for %q", id)
			}
		}
	})
}

func TestNextSequence(t *testing.T) {
	t.Run("empty day starts at one", func(t *testing.T) {
		if got := NextSequence(nil); got != 1 {
			t.Fatalf("expected 1, got %d", got)
		}
	})

	t.Run("fills the smallest gap", func(t *testing.T) {
		existing := []string{"2608291 C ACME", "2608293 E FOO", "2608294 ? BAR"}
		if got := NextSequence(existing); got != 2 {
			t.Fatalf("expected 2, got %d", got)
		}
	})

	t.Run("skips unparseable identifiers", func(t *testing.T) {
		existing := []string{"2608291 C ACME", "not-an-id"}
		if got := NextSequence(existing); got != 2 {
			t.Fatalf("expected 2, got %d", got)
		}
	})
}

// Models the allocation protocol: the candidate is computed from a snapshot
// taken outside any lock, uniqueness is enforced at insert time, and the
// caller retries on a conflict. All workers must end up with distinct
// sequence numbers 1..N.
func TestConcurrentAllocation(t *testing.T) {
	const workers = 10
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	used := make(map[string]bool)

	snapshot := func() []string {
		mu.Lock()
		defer mu.Unlock()
		ids := make([]string, 0, len(used))
		for id := range used {
			ids = append(ids, id)
		}
		return ids
	}
	insert := func(id string) bool {
		mu.Lock()
		defer mu.Unlock()
		if used[id] {
			return false
		}
		used[id] = true
		return true
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				candidate := FormatCustomID(date, NextSequence(snapshot()), "Calibracion", "ACME")
				if insert(candidate) {
					return
				}
			}
		}()
	}
	wg.Wait()

	if len(used) != workers {
		t.Fatalf("expected %d distinct identifiers, got %d", workers, len(used))
	}
	for n := 1; n <= workers; n++ {
		id := fmt.Sprintf("260829%d C ACME", n)
		if !used[id] {
			t.Fatalf("expected sequence %d to be allocated, missing %q", n, id)
		}
	}
}
