package models

import "testing"

func TestSnapshotHelpers(t *testing.T) {
	snap := Snapshot{
		"+1555": {
			{ID: "m1", Status: StatusRead},
			{ID: "m2", Status: StatusUnread},
			{ID: "m3", Status: StatusUnread},
		},
	}

	if got := snap.UnreadCount("+1555"); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}
	if got := snap.UnreadCount("+1666"); got != 0 {
		t.Fatalf("expected 0 unread for unknown sender, got %d", got)
	}

	latest, ok := snap.Latest("+1555")
	if !ok || latest.ID != "m3" {
		t.Fatalf("expected m3 latest, got %v ok=%v", latest, ok)
	}
	if _, ok := snap.Latest("+1666"); ok {
		t.Fatalf("expected no latest for unknown sender")
	}
}
