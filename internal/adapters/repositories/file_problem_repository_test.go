package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
places:
  Paris: {utility: 4, cost: 300, time: 2}
  Berlin: {utility: 10, cost: 350, time: 3}
paths:
  - {city1: Paris, city2: Berlin, time: 0.5, utility: 4}
`

const sampleJSON = `{
  "places": {"Venice": {"utility": 6, "cost": 200, "time": 1}},
  "paths": []
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileProblemRepository(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "europe.yaml", sampleYAML)
	writeFile(t, dir, "venice.json", sampleJSON)
	writeFile(t, dir, "notes.txt", "ignored")

	repo := NewFileProblemRepository(dir)
	ctx := context.Background()

	ids, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"europe", "venice"}, ids)

	def, err := repo.GetProblem(ctx, "europe")
	require.NoError(t, err)
	assert.Equal(t, domain.PlaceSpec{Utility: 10, Cost: 350, Time: 3}, def.Places["Berlin"])
	require.Len(t, def.Paths, 1)
	assert.Equal(t, domain.PathSpec{City1: "Paris", City2: "Berlin", Time: 0.5, Utility: 4}, def.Paths[0])

	def, err = repo.GetProblem(ctx, "venice")
	require.NoError(t, err)
	assert.Len(t, def.Places, 1)
}

func TestFileProblemRepositoryNotFound(t *testing.T) {
	repo := NewFileProblemRepository(t.TempDir())

	for _, id := range []string{"missing", "../etc/passwd", ""} {
		_, err := repo.GetProblem(context.Background(), id)
		assert.True(t, errors.Is(err, domain.ErrProblemNotFound), "id %q: %v", id, err)
	}
}

func TestFileProblemRepositoryUppercaseExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "iberia.YAML", sampleYAML)
	writeFile(t, dir, "venice.Json", sampleJSON)

	repo := NewFileProblemRepository(dir)
	ctx := context.Background()

	ids, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"iberia", "venice"}, ids)

	for _, id := range ids {
		def, err := repo.GetProblem(ctx, id)
		require.NoError(t, err, "listed problem %q must be retrievable", id)
		assert.NotEmpty(t, def.Places)
	}
}

func TestLoadProblemFileRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "places: {}\nroads: []\n")

	_, err := LoadProblemFile(filepath.Join(dir, "bad.yaml"))
	require.Error(t, err)
}

func TestLoadProblemSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seed.yaml", `
sample:
  places:
    A: {utility: 1, cost: 1, time: 1}
  paths: []
other:
  places:
    B: {utility: 2, cost: 2, time: 2}
`)

	set, err := LoadProblemSet(filepath.Join(dir, "seed.yaml"))
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, 2.0, set["other"].Places["B"].Utility)
}
