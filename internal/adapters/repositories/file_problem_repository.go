package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"trip-planner-service/internal/domain"

	"gopkg.in/yaml.v3"
)

var problemExtensions = []string{".yaml", ".yml", ".json"}

// File-backed implementation of the ProblemRepository port.
// Each problem lives in Dir as <id>.yaml, <id>.yml or <id>.json.
type FileProblemRepository struct {
	Dir string
}

func NewFileProblemRepository(dir string) *FileProblemRepository {
	return &FileProblemRepository{Dir: dir}
}

func (f *FileProblemRepository) GetProblem(ctx context.Context, id string) (*domain.ProblemDefinition, error) {
	id = strings.TrimSpace(id)
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("get problem %q: %w", id, domain.ErrProblemNotFound)
	}

	files, err := f.problemFiles()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get problem %q: %w", id, domain.ErrProblemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get problem %q: %w", id, err)
	}

	name, ok := files[id]
	if !ok {
		return nil, fmt.Errorf("get problem %q: %w", id, domain.ErrProblemNotFound)
	}

	def, err := LoadProblemFile(filepath.Join(f.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("get problem %q: %w", id, err)
	}
	return def, nil
}

func (f *FileProblemRepository) ListProblems(ctx context.Context) ([]string, error) {
	files, err := f.problemFiles()
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}

	ids := make([]string, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids, nil
}

// problemFiles maps problem ids to file names in Dir. Extensions match case
// insensitively; when an id has several files the earlier extension in
// problemExtensions wins.
func (f *FileProblemRepository) problemFiles() (map[string]string, error) {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", f.Dir, err)
	}

	files := map[string]string{}
	rank := map[string]int{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		r := slices.Index(problemExtensions, strings.ToLower(ext))
		if r < 0 {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if prev, ok := rank[id]; ok && prev <= r {
			continue
		}
		files[id] = e.Name()
		rank[id] = r
	}

	return files, nil
}

// LoadProblemFile reads a single problem definition from a YAML or JSON file.
func LoadProblemFile(path string) (*domain.ProblemDefinition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load problem: read %q: %w", path, err)
	}

	var def domain.ProblemDefinition
	if err := decodeByExtension(path, b, &def); err != nil {
		return nil, fmt.Errorf("load problem: parse %q: %w", path, err)
	}

	return &def, nil
}

// LoadProblemSet reads a seed file mapping problem ids to definitions.
func LoadProblemSet(path string) (map[string]domain.ProblemDefinition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load problem set: read %q: %w", path, err)
	}

	var set map[string]domain.ProblemDefinition
	if err := decodeByExtension(path, b, &set); err != nil {
		return nil, fmt.Errorf("load problem set: parse %q: %w", path, err)
	}

	return set, nil
}

func decodeByExtension(path string, b []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(v)
}
