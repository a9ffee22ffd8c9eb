package source

import (
	"strings"
	"testing"
)

func TestStringReader(t *testing.T) {
	r := NewString("ab")
	if got := r.Next(); got != 'a' {
		t.Fatalf("Next() = %q, want 'a'", got)
	}
	if got := r.Next(); got != 'b' {
		t.Fatalf("Next() = %q, want 'b'", got)
	}
	if got := r.Next(); got != 0 {
		t.Fatalf("Next() at EOF = %q, want 0", got)
	}
	if got := r.Next(); got != 0 {
		t.Fatalf("Next() after EOF = %q, want 0 to persist", got)
	}
}

func TestStringReaderEmpty(t *testing.T) {
	r := NewString("")
	if got := r.Next(); got != 0 {
		t.Errorf("Next() on empty reader = %q, want 0", got)
	}
}

func TestStreamReader(t *testing.T) {
	r := NewStream(strings.NewReader("xy"))
	var got []byte
	for {
		b := r.Next()
		if b == 0 {
			break
		}
		got = append(got, b)
	}
	if string(got) != "xy" {
		t.Errorf("StreamReader drained %q, want %q", got, "xy")
	}
	if got := r.Next(); got != 0 {
		t.Errorf("Next() after EOF = %q, want 0 to persist", got)
	}
}
