package utills

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := Truncate("a long message body", 10); got != "a long ..." {
		t.Fatalf("expected trimmed string with ellipsis, got %q", got)
	}
	if got := Truncate("abc", 2); got != "ab" {
		t.Fatalf("expected hard cut for tiny limits, got %q", got)
	}
}
