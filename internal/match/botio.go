package match

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/arena-engineering/arenactl/internal/logging"
	"github.com/arena-engineering/arenactl/internal/player"
)

// SyncBotData copies each bot's private per-match write directory back
// onto its read directory, overwriting existing contents, so the next
// invocation of the bot sees what it learned. Human participants are
// skipped. Only called after a successful match when the caller opted
// in.
func SyncBotData(players []player.Participant, game string) error {
	for nth, p := range players {
		if !p.IsBot() {
			continue
		}

		// The subpath is derived from the match name; keep it inside
		// the bot's write root.
		src, err := securejoin.SecureJoin(p.WriteDir(), fmt.Sprintf("%s_%d", game, nth))
		if err != nil {
			return fmt.Errorf("bad write directory for %s: %w", p.Name, err)
		}

		if _, err := os.Stat(src); os.IsNotExist(err) {
			logging.Debug("no write data to sync", "player", p.Name, "dir", src)
			continue
		}

		logging.Debug("overwriting bot read files", "player", p.Name, "from", src, "to", p.ReadDir())
		if err := copyTree(src, p.ReadDir()); err != nil {
			return fmt.Errorf("failed to sync bot data for %s: %w", p.Name, err)
		}
	}

	return nil
}

// copyTree recursively copies src onto dst, overwriting files that
// already exist.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
