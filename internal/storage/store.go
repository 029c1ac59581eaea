package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/san-kum/physics3/internal/config"
	"github.com/san-kum/physics3/internal/physics3"
)

// Store is a directory of .physics3.json documents.
type Store struct {
	baseDir string
	pattern string
	workers int
	opts    []physics3.Option
	log     *slog.Logger
}

type Option func(*Store)

// WithPattern sets the glob used by List and LoadAll.
func WithPattern(pattern string) Option {
	return func(s *Store) { s.pattern = pattern }
}

// WithDecodeOptions passes options through to physics3.Decode.
func WithDecodeOptions(opts ...physics3.Option) Option {
	return func(s *Store) { s.opts = append(s.opts, opts...) }
}

// WithWorkers bounds the number of concurrent decodes in LoadAll.
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(baseDir string, opts ...Option) *Store {
	s := &Store{
		baseDir: baseDir,
		pattern: config.DefaultPattern,
		workers: config.DefaultWorkers,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path resolves name against the store directory. Absolute names are kept.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

// Load reads and decodes a single document.
func (s *Store) Load(name string) (*physics3.Physics3, error) {
	path := s.Path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := physics3.Decode(f, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// List returns the names of matching files, sorted. A missing directory is
// treated as empty.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(s.pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", s.pattern, err)
		}
		if ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Summary is the listing view of one document.
type Summary struct {
	Name       string
	Version    int
	Settings   int
	Inputs     int
	Outputs    int
	Vertices   int
	Normalized int
	IDs        []string
}

func Summarize(name string, doc *physics3.Physics3) Summary {
	sum := Summary{
		Name:     name,
		Version:  doc.Version,
		Settings: len(doc.Settings),
		IDs:      make([]string, 0, len(doc.Settings)),
	}
	for _, st := range doc.Settings {
		sum.Inputs += len(st.Inputs)
		sum.Outputs += len(st.Outputs)
		sum.Vertices += len(st.Vertices)
		if st.Normalization != nil {
			sum.Normalized++
		}
		sum.IDs = append(sum.IDs, st.ID)
	}
	return sum
}
