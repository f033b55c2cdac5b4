package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"WaDesk/models"
)

func TestGormMirrorRoundTrip(t *testing.T) {
	mirror, err := NewGormMirror("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("expected mirror to open: %v", err)
	}

	snap := models.Snapshot{
		"+1555": {
			{ID: "m1", From: "+1555", Text: models.Text{Body: "hi"}, Timestamp: 1000, Status: models.StatusRead, Notes: "checked", BusinessPhoneNumberID: "chan1"},
			{ID: "m2", From: "+1555", Text: models.Text{Body: "again"}, Timestamp: 1001, Status: models.StatusUnread},
		},
		"+1666": {
			{ID: "m3", From: "+1666", Text: models.Text{Body: "other"}, Timestamp: 1002, Status: models.StatusArchived},
		},
	}
	if err := mirror.Save(snap); err != nil {
		t.Fatalf("expected save to succeed: %v", err)
	}

	got, err := mirror.Load()
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if !reflect.DeepEqual(snap, got) {
		t.Fatalf("expected round trip to preserve mapping:\n%v\nvs\n%v", snap, got)
	}
}

func TestGormMirrorSaveReplacesWholeMapping(t *testing.T) {
	mirror, err := NewGormMirror("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("expected mirror to open: %v", err)
	}

	first := models.Snapshot{
		"+1555": {{ID: "m1", From: "+1555", Text: models.Text{Body: "hi"}, Status: models.StatusUnread}},
	}
	if err := mirror.Save(first); err != nil {
		t.Fatal(err)
	}

	second := models.Snapshot{
		"+1666": {{ID: "m2", From: "+1666", Text: models.Text{Body: "bye"}, Status: models.StatusUnread}},
	}
	if err := mirror.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := mirror.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(second, got) {
		t.Fatalf("expected save to replace previous mapping, got %v", got)
	}
}

func TestGormMirrorUnsupportedDriver(t *testing.T) {
	if _, err := NewGormMirror("postgres", ""); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
