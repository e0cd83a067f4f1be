package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Dir publishes snapshots as .html files in a local directory.
type Dir struct {
	dir string
}

// NewDir creates a Dir publisher, creating the directory if needed.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Dir{dir: dir}, nil
}

// Publish writes the snapshot to <dir>/<name>.html and returns the path.
func (d *Dir) Publish(ctx context.Context, name, html string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", ErrBadName
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(d.dir, name+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", err
	}
	return path, nil
}
