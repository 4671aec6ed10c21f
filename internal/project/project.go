// Package project owns a project's on-disk footprint: the project folder,
// the plan note, the metadata file, and the task database schema.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/taskpad-dev/taskpad/internal/store"
)

const (
	metadataFile = ".taskpad.yaml"
	planSuffix   = ".plan"
	dbSuffix     = ".db"
)

var (
	// ErrInvalidName is returned when a project name is empty or would
	// escape the base directory as a path component.
	ErrInvalidName = errors.New("invalid project name")

	// ErrExists is returned when initializing a project that is already
	// set up and --force was not given.
	ErrExists = errors.New("project already exists")

	// ErrNotFound is returned when a named project has no store on disk.
	ErrNotFound = errors.New("project not found")
)

// Metadata describes a project in its .taskpad.yaml file.
type Metadata struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Store manages project workspaces under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// ValidateName checks that name is usable as a filesystem path component.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Dir returns the project folder path.
func (s *Store) Dir(name string) string {
	return filepath.Join(s.baseDir, name)
}

// DBPath returns the path of the project's task database. The project
// name is the file stem, so the path is deterministic from the name.
func (s *Store) DBPath(name string) string {
	return filepath.Join(s.baseDir, name, name+dbSuffix)
}

// PlanPath returns the path of the project's plan note.
func (s *Store) PlanPath(name string) string {
	return filepath.Join(s.baseDir, name, name+planSuffix)
}

// MetadataPath returns the path of the project's metadata file.
func (s *Store) MetadataPath(name string) string {
	return filepath.Join(s.baseDir, name, metadataFile)
}

// Exists reports whether the project has a store on disk.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.DBPath(name))
	return err == nil
}

// Init creates the project's full on-disk footprint: folder, plan file,
// metadata file, and task database with its schema. With force, an
// existing project is re-scaffolded; its database and any rows in it
// survive because schema initialization is idempotent.
func (s *Store) Init(name string, force bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := s.Dir(name)
	if _, err := os.Stat(dir); err == nil && !force {
		return fmt.Errorf("%s: %w", name, ErrExists)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create project folder: %w", err)
	}

	if err := s.writePlanFile(name); err != nil {
		return err
	}
	if err := s.writeMetadata(name); err != nil {
		return err
	}
	return s.InitSchema(name)
}

// InitSchema opens (creating if absent) the project's database and
// ensures the tasks table exists. Calling it twice is a no-op; a
// pre-existing incompatible schema fails with store.ErrSchema.
func (s *Store) InitSchema(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	db, err := store.Open(s.DBPath(name))
	if err != nil {
		return fmt.Errorf("init %s: %w", name, err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("init %s: %w", name, err)
	}
	return nil
}

// Open opens the project's existing task store. The caller owns the
// returned handle and must close it. A project without a store on disk
// yields ErrNotFound rather than silently creating one.
func (s *Store) Open(name string) (*store.DB, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	db, err := store.OpenExisting(s.DBPath(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("project %q: %w (run 'taskpad init %s' first)", name, ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Metadata reads the project's metadata file.
func (s *Store) Metadata(name string) (*Metadata, error) {
	data, err := os.ReadFile(s.MetadataPath(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("project %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &meta, nil
}

// writePlanFile creates the plan note if it doesn't already exist, so
// re-initialization never clobbers notes the user has taken.
func (s *Store) writePlanFile(name string) error {
	path := s.PlanPath(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	content := fmt.Sprintf("Project Plan: %s\n", name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("create plan file: %w", err)
	}
	return nil
}

// writeMetadata creates the metadata file if it doesn't already exist,
// preserving the project id across re-initialization.
func (s *Store) writeMetadata(name string) error {
	path := s.MetadataPath(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	meta := Metadata{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("create metadata file: %w", err)
	}
	return nil
}
