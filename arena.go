package rbi

import (
	"fmt"
	"os"
	"path/filepath"
)

// Arena is the per-run scratch area for intermediate geometries. Every site
// gets its own namespaced directory, so no two sites ever share a scratch
// name and a later parallel site loop needs no further changes. Release is
// deferred on every exit path of the site loop.
type Arena struct {
	root string
	keep bool
}

// SiteScratch is one site's scoped scratch directory.
type SiteScratch struct {
	dir  string
	keep bool
}

// NewArena creates the run's scratch root under dir.
func NewArena(dir string) (*Arena, error) {
	root, err := os.MkdirTemp(dir, "rbi-scratch-")
	if err != nil {
		return nil, fmt.Errorf("NewArena: %v", err)
	}
	return &Arena{root: root}, nil
}

// NewKeepArena creates a scratch root whose artifacts survive Release and
// Close, for post-run inspection.
func NewKeepArena(dir string) (*Arena, error) {
	a, err := NewArena(dir)
	if err != nil {
		return nil, err
	}
	a.keep = true
	return a, nil
}

// Site acquires the scratch directory for one site id.
func (a *Arena) Site(id int) (*SiteScratch, error) {
	d := filepath.Join(a.root, fmt.Sprintf("s%d", id))
	if err := os.MkdirAll(d, 0755); err != nil {
		return nil, fmt.Errorf("Arena.Site %d: %v", id, err)
	}
	return &SiteScratch{dir: d, keep: a.keep}, nil
}

// Path names a scratch artifact inside the site's namespace.
func (s *SiteScratch) Path(name string) string { return filepath.Join(s.dir, name) }

// Release removes the site's scratch artifacts.
func (s *SiteScratch) Release() {
	if s == nil || s.keep {
		return
	}
	os.RemoveAll(s.dir)
}

// Close removes the whole run's scratch root.
func (a *Arena) Close() {
	if a == nil || a.keep {
		return
	}
	os.RemoveAll(a.root)
}
