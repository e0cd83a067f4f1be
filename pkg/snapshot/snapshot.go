// Package snapshot renders block instances to static markup and publishes
// the result to a storage target.
//
// A snapshot is the full serialized page for one instance: what a live
// session would send in its hello frame, captured as a file. Publishers
// write snapshots to the local filesystem or to S3.
package snapshot

import (
	"context"
	"errors"

	"github.com/tessera-ui/tessera/pkg/block"
	"github.com/tessera-ui/tessera/pkg/dom"
)

// Snapshot errors.
var (
	// ErrBadName is returned for snapshot names containing path separators.
	ErrBadName = errors.New("tessera: snapshot name contains path separator")
)

// Publisher writes a named snapshot and returns its final location.
type Publisher interface {
	Publish(ctx context.Context, name, html string) (string, error)
}

// Render mounts inst into a fresh document and returns the serialized
// markup of its mount point.
func Render(inst *block.Instance) (string, error) {
	doc := dom.NewDocument()
	root := doc.CreateElement("main")
	if err := inst.Mount(root); err != nil {
		return "", err
	}
	return root.HTML(), nil
}
