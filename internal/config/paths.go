package config

import (
	"os"
	"path/filepath"
)

// Paths holds the host directories arenactl works with. LogDir, MapDir
// and the two BWTA cache directories are mounted into every unit.
type Paths struct {
	// BaseDir is the arenactl state root (default ~/.arenactl)
	BaseDir string

	// ConfigDir holds config.toml
	ConfigDir string

	// LogDir receives unit logs, result and frame-timing files
	LogDir string

	// MapDir holds maps and the replay output directory
	MapDir string

	// BotDir is the default parent directory for bot roots
	BotDir string

	// BWTADir and BWTA2Dir are the shared terrain-analysis caches
	BWTADir  string
	BWTA2Dir string
}

// DefaultPaths returns the standard path layout. The base directory can
// be moved with ARENACTL_BASE_DIR.
func DefaultPaths() *Paths {
	base := os.Getenv("ARENACTL_BASE_DIR")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".arenactl")
	}

	return PathsAt(base)
}

// PathsAt returns the path layout rooted at base.
func PathsAt(base string) *Paths {
	return &Paths{
		BaseDir:   base,
		ConfigDir: base,
		LogDir:    filepath.Join(base, "logs"),
		MapDir:    filepath.Join(base, "maps"),
		BotDir:    filepath.Join(base, "bots"),
		BWTADir:   filepath.Join(base, "bwapi-data", "BWTA"),
		BWTA2Dir:  filepath.Join(base, "bwapi-data", "BWTA2"),
	}
}

// EnsureDirs creates all state directories.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{
		p.BaseDir,
		p.LogDir,
		p.MapDir,
		p.BotDir,
		p.BWTADir,
		p.BWTA2Dir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
