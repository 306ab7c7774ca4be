package schema

import (
	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/spoolkit/spool/errors"
)

// Load reads and parses a schema file. The result is not yet validated
// or compiled; pass it to Compile.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseCompile, errors.KindInvalidSchema, err, "parsing "+path)
	}
	Logger().Info("schema loaded",
		zap.String("path", path),
		zap.Int("types", len(f.Types)))
	return &f, nil
}

// Parse parses schema TOML held in memory.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseCompile, errors.KindInvalidSchema, err, "parsing schema")
	}
	return &f, nil
}
