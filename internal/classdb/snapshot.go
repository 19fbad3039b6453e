package classdb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Dump is the on-disk layout of a reflection snapshot.
type Dump struct {
	Build            BuildInfo            `yaml:"build" toml:"build"`
	Classes          []ClassInfo          `yaml:"classes" toml:"classes"`
	PrimitiveTypes   []PrimitiveClassInfo `yaml:"primitive_types" toml:"primitive_types"`
	Singletons       []SingletonInfo      `yaml:"singletons" toml:"singletons"`
	GlobalConstants  []GlobalConstantInfo `yaml:"global_constants" toml:"global_constants"`
	UtilityFunctions []MethodBind         `yaml:"utility_functions" toml:"utility_functions"`
	Docs             map[string]ClassDoc  `yaml:"docs" toml:"docs"`
}

// Snapshot serves a Dump through the host reflection interface. File
// deletions are confined to the snapshot's root directory.
type Snapshot struct {
	mu   sync.RWMutex
	root string
	dump Dump
}

// NewSnapshot wraps an already decoded dump. root bounds DeleteFile.
func NewSnapshot(root string, dump Dump) *Snapshot {
	return &Snapshot{root: root, dump: dump}
}

// LoadSnapshot reads a dump from a .yaml, .yml, .json or .toml file. The
// directory holding the file becomes the snapshot root.
func LoadSnapshot(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var dump Dump
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(content, &dump); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(content, &dump); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", ext)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return NewSnapshot(root, dump), nil
}

// BuildInfo returns the host version constants recorded in the dump.
func (s *Snapshot) BuildInfo() BuildInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dump.Build
}

func (s *Snapshot) GetClasses(ctx context.Context) ([]ClassInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ClassInfo(nil), s.dump.Classes...), nil
}

func (s *Snapshot) GetPrimitiveTypes(ctx context.Context) ([]PrimitiveClassInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]PrimitiveClassInfo(nil), s.dump.PrimitiveTypes...), nil
}

func (s *Snapshot) GetSingletons(ctx context.Context) ([]SingletonInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SingletonInfo(nil), s.dump.Singletons...), nil
}

func (s *Snapshot) GetGlobalConstants(ctx context.Context) ([]GlobalConstantInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]GlobalConstantInfo(nil), s.dump.GlobalConstants...), nil
}

func (s *Snapshot) GetUtilityFunctions(ctx context.Context) ([]MethodBind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MethodBind(nil), s.dump.UtilityFunctions...), nil
}

// GetClassDoc looks up the documentation of a class. The boolean is false
// when the class has no documentation.
func (s *Snapshot) GetClassDoc(ctx context.Context, className string) (ClassDoc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.dump.Docs[className]
	return doc, ok, nil
}

// DeleteFile removes a file below the snapshot root. Relative paths are
// resolved against the root. A missing file is not an error.
func (s *Snapshot) DeleteFile(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == "" {
		return errors.New("snapshot has no root directory")
	}
	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.root, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(s.root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to delete %s: outside of %s", path, s.root)
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
