// Package store persists an address book as a single JSON snapshot file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/contact"
)

// SnapshotVersion is the snapshot format written by Save.
const SnapshotVersion = 1

// ErrUnsupportedVersion indicates a snapshot written by an incompatible format.
var ErrUnsupportedVersion = errors.New("store: unsupported snapshot version")

// snapshot is the on-disk form of an address book.
type snapshot struct {
	Version  int              `json:"version"`
	Contacts []snapshotRecord `json:"contacts"`
}

type snapshotRecord struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

// FileStore reads and writes the snapshot at a fixed path.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for load and save events.
func WithLogger(l *zap.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore creates a FileStore for the snapshot at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the snapshot into a new AddressBook built with opts.
// Returns (book, true, nil) if the file exists, (empty book, false, nil) if not.
// Stored values go through the same validation as user input, so a
// snapshot holding an invalid phone or date is rejected.
func (s *FileStore) Load(opts ...book.Option) (*book.AddressBook, bool, error) {
	b := book.New(opts...)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("snapshot not found, starting empty", zap.String("path", s.path))
			return b, false, nil
		}
		return nil, false, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("store: parsing %s: %w", s.path, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, false, fmt.Errorf("%w: %s has version %d", ErrUnsupportedVersion, s.path, snap.Version)
	}

	for i, sr := range snap.Contacts {
		r, err := decodeRecord(sr)
		if err != nil {
			return nil, false, fmt.Errorf("store: %s: contact %d: %w", s.path, i, err)
		}
		b.Add(r)
	}

	s.logger.Debug("snapshot loaded", zap.String("path", s.path), zap.Int("contacts", b.Len()))
	return b, true, nil
}

// Save writes b to the snapshot path. The data goes to a temporary file in
// the same directory first and is renamed into place.
func (s *FileStore) Save(b *book.AddressBook) error {
	snap := snapshot{Version: SnapshotVersion, Contacts: []snapshotRecord{}}
	for _, r := range b.Records() {
		snap.Contacts = append(snap.Contacts, encodeRecord(r))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("store: replacing %s: %w", s.path, err)
	}

	s.logger.Debug("snapshot saved", zap.String("path", s.path), zap.Int("contacts", b.Len()))
	return nil
}

func encodeRecord(r *contact.Record) snapshotRecord {
	sr := snapshotRecord{Name: r.Name.String(), Phones: []string{}}
	for _, p := range r.Phones {
		sr.Phones = append(sr.Phones, p.String())
	}
	if !r.Birthday.IsZero() {
		sr.Birthday = r.Birthday.String()
	}
	return sr
}

func decodeRecord(sr snapshotRecord) (*contact.Record, error) {
	r, err := contact.NewRecord(sr.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range sr.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if sr.Birthday != "" {
		if err := r.SetBirthday(sr.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}
