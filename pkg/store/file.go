package store

import (
	"encoding/json"
	"errors"
	"os"

	"WaDesk/models"
)

// FileMirror persists the mapping as one pretty-printed JSON document,
// overwritten wholesale on every save so it stays hand-editable. This is the
// default mirror.
type FileMirror struct {
	path string
}

func NewFileMirror(path string) *FileMirror {
	return &FileMirror{path: path}
}

// Load reads the document. A missing file is not an error: it just means
// nothing has been saved yet.
func (f *FileMirror) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (f *FileMirror) Save(snap models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}
