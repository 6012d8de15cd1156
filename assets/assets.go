// Package assets embeds the bundled level files.
package assets

import (
	"embed"
	"io/fs"

	"github.com/automoto/burrow/sim"
)

//go:embed all:levels
var assetFS embed.FS

const levelsDir = "levels"

// LevelFS exposes the embedded files for callers that parse levels themselves.
func LevelFS() fs.FS {
	return assetFS
}

// LoadLevels parses every bundled level, keyed by file stem.
func LoadLevels() (map[string]*sim.Level, []string, error) {
	return sim.LoadAllLevels(assetFS, levelsDir)
}

// MustLoadLevels is LoadLevels for program start-up, where a broken bundle is fatal.
func MustLoadLevels() (map[string]*sim.Level, []string) {
	levels, names, err := LoadLevels()
	if err != nil {
		panic(err)
	}
	return levels, names
}
