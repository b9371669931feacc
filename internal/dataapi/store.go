package dataapi

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"teamcomp/internal"
	"teamcomp/internal/errors"
)

// Bosses are the data file keys served as <boss>Team endpoints
var Bosses = []string{"giovanni", "arlo", "cliff", "sierra"}

// NeverUpdated is reported by Status for a boss without last_updated
const NeverUpdated = "Never updated"

// Store holds the cached data file in memory. The file is an object keyed
// by boss name, each value a page payload.
type Store struct {
	path   string
	logger *internal.Logger

	mu       sync.RWMutex
	doc      gjson.Result
	loadedAt time.Time
}

// NewStore creates an empty store backed by path. Call Load to read it.
func NewStore(path string, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Store{path: path, logger: logger, doc: gjson.Parse("{}")}
}

// Load reads the data file. A missing file leaves the store empty; an
// unreadable or invalid one is an error and keeps the previous contents.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Warn("[DataStore] %s not found, serving empty data", s.path)
		s.replace(gjson.Parse("{}"))
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", s.path)
	}
	return s.LoadBytes(data)
}

// LoadBytes replaces the store contents with data
func (s *Store) LoadBytes(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.InvalidPayload(fmt.Errorf("%s is not valid JSON", s.path))
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return errors.InvalidPayload(fmt.Errorf("%s must hold a JSON object", s.path))
	}
	s.replace(doc)
	s.logger.Info("[DataStore] loaded %d entries from %s", len(doc.Map()), s.path)
	return nil
}

func (s *Store) replace(doc gjson.Result) {
	s.mu.Lock()
	s.doc = doc
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// Payload returns the raw JSON stored under key, or {} when absent. key is
// a plain identifier, never a gjson path.
func (s *Store) Payload(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry := s.doc.Get(key)
	if !entry.IsObject() {
		return "{}"
	}
	return entry.Raw
}

// Status maps every boss to its last_updated value
func (s *Store) Status() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := make(map[string]string, len(Bosses))
	for _, b := range Bosses {
		updated := s.doc.Get(b + ".last_updated")
		if updated.Type == gjson.String && updated.String() != "" {
			status[b] = updated.String()
		} else {
			status[b] = NeverUpdated
		}
	}
	return status
}

// LoadedAt reports when the data was last (re)loaded
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
