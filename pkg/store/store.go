package store

import (
	"sync"

	"WaDesk/models"

	"go.uber.org/zap"
)

// Mirror is the durable copy of the in-memory mapping. Save overwrites the
// whole document on every call; Load returns whatever was last saved.
type Mirror interface {
	Load() (models.Snapshot, error)
	Save(models.Snapshot) error
}

// Store owns the sender -> messages mapping and keeps the mirror in sync.
// Handlers run on multiple goroutines, so every access goes through the lock;
// mutating operations save the mirror before releasing it, which keeps the
// write-then-notify ordering: by the time a caller broadcasts a snapshot, the
// state it reflects is already on disk (or the failure has been logged).
type Store struct {
	mu     sync.RWMutex
	byFrom map[string][]*models.Message
	mirror Mirror
	logger *zap.Logger
}

func New(mirror Mirror, logger *zap.Logger) *Store {
	return &Store{
		byFrom: make(map[string][]*models.Message),
		mirror: mirror,
		logger: logger,
	}
}

// Load populates the store from the mirror at startup. A missing or corrupt
// mirror is logged and ignored; the store starts empty rather than blocking
// the process.
func (s *Store) Load() {
	snap, err := s.mirror.Load()
	if err != nil {
		s.logger.Warn("mirror load failed, starting with empty store", zap.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byFrom = make(map[string][]*models.Message, len(snap))
	for from, msgs := range snap {
		for i := range msgs {
			m := msgs[i]
			s.byFrom[from] = append(s.byFrom[from], &m)
		}
	}
}

// Append adds a message under its sender, creating the conversation if this
// is the first message from them.
func (s *Store) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := msg
	s.byFrom[m.From] = append(s.byFrom[m.From], &m)
	s.save()
}

// Find returns the first message with the given id. Ids are not enforced to
// be unique across senders; with a duplicate the winner follows map iteration
// order, which is unspecified.
func (s *Store) Find(id string) (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m := s.findLocked(id); m != nil {
		return *m, true
	}
	return models.Message{}, false
}

func (s *Store) findLocked(id string) *models.Message {
	for _, msgs := range s.byFrom {
		for _, m := range msgs {
			if m.ID == id {
				return m
			}
		}
	}
	return nil
}

// Mutate applies fn to the message with the given id and saves the mirror.
// An unknown id returns false and leaves the store untouched; that is a
// normal outcome (stale dashboard reference), not an error.
func (s *Store) Mutate(id string, fn func(*models.Message)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findLocked(id)
	if m == nil {
		return false
	}
	fn(m)
	s.save()
	return true
}

// Snapshot returns a deep copy of the full mapping. Callers may hold or
// mutate the result freely.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Snapshot {
	snap := make(models.Snapshot, len(s.byFrom))
	for from, msgs := range s.byFrom {
		out := make([]models.Message, len(msgs))
		for i, m := range msgs {
			out[i] = *m
		}
		snap[from] = out
	}
	return snap
}

// save mirrors the current mapping. Failures are logged and swallowed: the
// in-memory state stays authoritative for the running process, durability
// resumes on the next successful save.
func (s *Store) save() {
	if err := s.mirror.Save(s.snapshotLocked()); err != nil {
		s.logger.Error("mirror save failed", zap.Error(err))
	}
}
