// Package storage keeps experiment runs on disk, one directory per run with
// its metadata, sampled paths and impulses.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/lspline/internal/analysis"
	"github.com/san-kum/lspline/internal/config"
	"github.com/san-kum/lspline/internal/experiment"
	"github.com/san-kum/lspline/internal/export"
	"github.com/san-kum/lspline/internal/stoch"
)

const (
	metadataFile = "metadata.json"
	pathsFile    = "paths.csv"
	impulsesFile = "impulses.json"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Config    config.Config    `json:"config"`
	Impulses  int              `json:"impulses"`
	Summary   analysis.Summary `json:"summary"`
}

// Save writes a run and returns its id. Ids are unique within a store.
func (s *Store) Save(cfg config.Config, res *experiment.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	now := time.Now()
	base := fmt.Sprintf("run_%d", now.Unix())
	runID := base
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, runID)); os.IsNotExist(err) {
			break
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Config:    cfg,
		Impulses:  len(res.Impulses),
		Summary:   res.Summary,
	}
	if err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		return export.WriteJSON(f, meta)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, pathsFile), func(f *os.File) error {
		return export.WriteCSV(f,
			export.Column{Name: "path", Series: res.Path},
			export.Column{Name: "continuous", Series: res.Continuous})
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, impulsesFile), func(f *os.File) error {
		return export.WriteJSON(f, res.Impulses)
	}); err != nil {
		return "", err
	}
	return runID, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPaths returns the grid path and the continuous path of a run.
func (s *Store) LoadPaths(runID string) (path, continuous stoch.Series, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, pathsFile))
	if err != nil {
		return stoch.Series{}, stoch.Series{}, err
	}
	defer f.Close()

	cols, err := export.ReadCSV(f)
	if err != nil {
		return stoch.Series{}, stoch.Series{}, err
	}
	for _, c := range cols {
		switch c.Name {
		case "path":
			path = c.Series
		case "continuous":
			continuous = c.Series
		}
	}
	return path, continuous, nil
}

func (s *Store) LoadImpulses(runID string) (stoch.Realization, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, impulsesFile))
	if err != nil {
		return nil, err
	}
	var r stoch.Realization
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r, nil
}
