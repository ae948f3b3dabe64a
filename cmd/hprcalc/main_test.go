package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<HarvestedProduction>
  <SpeciesGroupDefinition>
    <SpeciesGroupKey>1</SpeciesGroupKey>
    <SpeciesGroupName>Tall</SpeciesGroupName>
  </SpeciesGroupDefinition>
  <Stem stemKey="1" speciesGroupKey="1" dbh="210">
    <Log><LogVolume logVolumeCategory="m3sub">0.45</LogVolume></Log>
  </Stem>
</HarvestedProduction>`

func TestProductionFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.hpr", "a.HPR", "notes.txt", "c.xml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.hpr"), 0755))

	names, err := productionFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.HPR", "b.hpr"}, names)
}

func TestRunWritesCSV(t *testing.T) {
	inDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "stand.hpr"), []byte(sampleDoc), 0644))
	outFile := filepath.Join(t.TempDir(), "results.csv")

	err := run(context.Background(), slog.Default(), inDir, outFile, t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pine")
}

func TestRunNoFiles(t *testing.T) {
	err := run(context.Background(), slog.Default(), t.TempDir(), "out.csv", t.TempDir())
	assert.Error(t, err)
}
