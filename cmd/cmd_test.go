package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scorestream/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ql(v float64) *float64 {
	return &v
}

func writeScale(t *testing.T) string {
	doc := model.ScoreDoc{Kind: "Part", TimeSignature: "3/4"}
	for _, name := range []string{"C4", "D4", "E4", "F4", "G4", "A4"} {
		doc.Elements = append(doc.Elements, model.ScoreDoc{Kind: "Note", Pitch: name, QuarterLength: ql(1)})
	}
	dat, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scale.json")
	require.NoError(t, os.WriteFile(path, dat, 0644))
	return path
}

func run(t *testing.T, args ...string) {
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestLoadStream(t *testing.T) {
	s, err := LoadStream(writeScale(t))
	require.NoError(t, err)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, "3/4", s.TimeSignature().Ratio())

	_, err = LoadStream(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExportCommandWritesReadableMidi(t *testing.T) {
	in := writeScale(t)
	out := filepath.Join(t.TempDir(), "scale.mid")
	run(t, "export", in, out)

	s, err := LoadStream(out)
	require.NoError(t, err)
	parts := s.PartList()
	require.Len(t, parts, 1)
	assert.Equal(t, 6.0, parts[0].HighestTime())
	assert.Equal(t, "3/4", s.TimeSignature().Ratio())
}

func TestMeasuresCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "measured.json")
	run(t, "measures", writeScale(t), "--out", out)

	dat, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc model.ScoreDoc
	require.NoError(t, json.Unmarshal(dat, &doc))
	require.Len(t, doc.Elements, 2)
	assert.Equal(t, "Measure", doc.Elements[0].Kind)
	assert.Equal(t, 2, doc.Elements[1].Number)
}

func TestRollCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scale.png")
	run(t, "roll", writeScale(t), out)
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "a/b.mid", withExt("a/b.json", ".mid"))
	assert.Equal(t, "noext.png", withExt("noext", ".png"))
}
