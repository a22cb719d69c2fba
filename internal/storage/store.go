package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/personalmemory/memory-mcp/internal/models"
)

// Store owns the persisted memory document. It loads the document once at
// startup, keeps it in memory, and rewrites the whole file on every mutation.
// A single mutex guards the document and its persisted copy; there is no
// finer-grained isolation.
type Store struct {
	mu             sync.Mutex
	path           string
	doc            *models.Document
	log            *slog.Logger
	queueUnmatched bool
	now            func() time.Time
}

// Option configures a Store created with Open.
type Option func(*Store)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithQueueUnmatched controls what happens to a new flat key that no
// suggestion rule matches: false files it under misc, true appends a
// pending-categorization item instead.
func WithQueueUnmatched(on bool) Option {
	return func(s *Store) {
		s.queueUnmatched = on
	}
}

// Open loads (or initializes) the memory document at path and runs the
// one-time structural migration. Parent directories are created as needed.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		log:  slog.New(slog.DiscardHandler),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	dirty := s.load()

	if s.doc.DocumentID == "" {
		s.doc.DocumentID = uuid.New().String()
		dirty = true
	}

	if migrated := s.migratePersonalInfo(); migrated {
		dirty = true
	}

	if dirty {
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the absolute path of the backing file.
func (s *Store) Path() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return s.path
	}
	return abs
}

// load reads the document from disk. A missing, unreadable, or malformed
// file falls back to a fresh document; corruption is never fatal. The return
// value reports whether the in-memory document differs from what is on disk.
func (s *Store) load() (dirty bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("memory file unreadable, starting fresh", "path", s.path, "error", err)
		}
		s.doc = s.initDocument()
		return true
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		// Keep the malformed bytes on disk for manual rescue; the fresh
		// document would otherwise overwrite them on the first save.
		backup := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			backup = ""
		}
		s.log.Warn("memory file malformed, starting fresh",
			"path", s.path, "backup", backup, "error", err)
		s.doc = s.initDocument()
		return true
	}

	// Collections may be absent in hand-edited or older files.
	if doc.PersonalInfo == nil {
		doc.PersonalInfo = map[string]any{}
	}
	if doc.Preferences == nil {
		doc.Preferences = map[string]map[string]any{}
	}
	if doc.Relationships == nil {
		doc.Relationships = map[string]models.Relationship{}
	}
	s.doc = &doc
	return false
}

func (s *Store) initDocument() *models.Document {
	now := s.timestamp()
	return &models.Document{
		PersonalInfo:  map[string]any{},
		Preferences:   map[string]map[string]any{},
		Memories:      []models.Memory{},
		Relationships: map[string]models.Relationship{},
		Goals:         []models.Goal{},
		CreatedAt:     now,
		LastUpdated:   now,
	}
}

// save stamps last_updated and rewrites the whole file, pretty-printed with
// non-ASCII preserved.
func (s *Store) save() error {
	s.doc.LastUpdated = s.timestamp()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.doc); err != nil {
		return fmt.Errorf("encode memory document: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write memory document: %w", err)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().Format(time.RFC3339)
}

// Stats returns a summary of everything in the document.
func (s *Store) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	breakdown := map[string]int{}
	for _, g := range s.doc.Goals {
		breakdown[g.Status]++
	}

	return models.Stats{
		TotalPersonalInfoItems: len(s.doc.PersonalInfo),
		TotalMemories:          len(s.doc.Memories),
		TotalRelationships:     len(s.doc.Relationships),
		TotalGoals:             len(s.doc.Goals),
		GoalBreakdown:          breakdown,
		PreferenceCategories:   len(s.doc.Preferences),
		PendingCategorization:  len(s.doc.PendingCategorization),
		CreatedAt:              s.doc.CreatedAt,
		LastUpdated:            s.doc.LastUpdated,
		StorageFile:            s.Path(),
	}
}
