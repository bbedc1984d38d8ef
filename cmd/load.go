package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/scorestream/codec"
	"github.com/jsphweid/scorestream/midi"
	"github.com/jsphweid/scorestream/model"
	"github.com/jsphweid/scorestream/stream"
	"github.com/pkg/errors"
)

// LoadStream reads a .mid/.midi file or a JSON score document.
func LoadStream(path string) (*stream.Stream, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		s, err := midi.ReadMidiFile(path)
		if err != nil {
			return nil, err
		}
		score, err := midi.Import(s)
		if err != nil {
			return nil, err
		}
		return &score.Stream, nil
	}

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read %s", path)
	}
	var doc model.ScoreDoc
	if err := json.Unmarshal(dat, &doc); err != nil {
		return nil, errors.Wrapf(err, "Could not decode %s", path)
	}
	return codec.DecodeStream(doc)
}

func writeDoc(s *stream.Stream, out string) error {
	dat, err := json.MarshalIndent(codec.Encode(s.Self()), "", "  ")
	if err != nil {
		return err
	}
	if out == "" {
		_, err = os.Stdout.Write(append(dat, '\n'))
		return err
	}
	return os.WriteFile(out, dat, 0644)
}
