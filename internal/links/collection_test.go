package links

import (
	"errors"
	"fmt"
	"testing"
)

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid https", "https://example.com/page", nil},
		{"valid http", "http://example.com", nil},
		{"surrounding whitespace", "  https://trimmed.example  ", nil},
		{"blank", "", ErrEmptyInput},
		{"only whitespace", "   ", ErrEmptyInput},
		{"no scheme", "example.com", ErrInvalidURL},
		{"relative path", "/just/a/path", ErrInvalidURL},
		{"plain words", "not a url", ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection(5)
			stored, err := c.Add(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add(%q) err = %v, want %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if c.Len() != 1 {
					t.Errorf("Len() = %d, want 1", c.Len())
				}
				if !c.Contains(stored) {
					t.Errorf("collection does not contain stored URL %q", stored)
				}
			} else if c.Len() != 0 {
				t.Errorf("failed Add still stored an entry")
			}
		})
	}
}

func TestAddDeduplicates(t *testing.T) {
	c := NewCollection(5)

	if _, err := c.Add("https://a.com"); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := c.Add("https://a.com"); !errors.Is(err, ErrDuplicateURL) {
		t.Fatalf("identical Add err = %v, want ErrDuplicateURL", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	// Different spellings of the same page are distinct entries.
	if _, err := c.Add("https://a.com/"); err != nil {
		t.Errorf("trailing-slash variant rejected: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestAddCapacity(t *testing.T) {
	const capacity = 3
	c := NewCollection(capacity)

	for i := 0; i < capacity; i++ {
		if _, err := c.Add(fmt.Sprintf("https://example.com/%d", i)); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	if _, err := c.Add("https://example.com/overflow"); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("overflow Add err = %v, want ErrCapacityExceeded", err)
	}
	if c.Len() != capacity {
		t.Errorf("Len() = %d, want %d", c.Len(), capacity)
	}
}

func TestCapacityClamped(t *testing.T) {
	if got := NewCollection(0).Capacity(); got != DefaultCapacity {
		t.Errorf("Capacity() = %d, want default %d", got, DefaultCapacity)
	}
	if got := NewCollection(99).Capacity(); got != MaxCapacity {
		t.Errorf("Capacity() = %d, want clamped %d", got, MaxCapacity)
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := NewCollection(5)
	for _, u := range []string{"https://a.com", "https://b.com", "https://c.com"} {
		if _, err := c.Add(u); err != nil {
			t.Fatalf("Add(%q): %v", u, err)
		}
	}

	c.Remove("https://b.com")
	if got := c.URLs(); len(got) != 2 || got[0] != "https://a.com" || got[1] != "https://c.com" {
		t.Errorf("URLs() after Remove = %v", got)
	}

	// Removing something absent is a no-op.
	c.Remove("https://nope.com")
	if c.Len() != 2 {
		t.Errorf("Len() after absent Remove = %d, want 2", c.Len())
	}

	// A removed URL can be re-added.
	if _, err := c.Add("https://b.com"); err != nil {
		t.Errorf("re-Add after Remove: %v", err)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if _, err := c.Add("https://a.com"); err != nil {
		t.Errorf("Add after Clear: %v", err)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := NewCollection(10)
	want := []string{"https://z.com", "https://a.com", "https://m.com"}
	for _, u := range want {
		if _, err := c.Add(u); err != nil {
			t.Fatalf("Add(%q): %v", u, err)
		}
	}
	got := c.URLs()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("URLs() = %v, want %v", got, want)
		}
	}
}
