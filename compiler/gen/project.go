package gen

import (
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GeneratedProject is an ordered mapping from relative output path to file
// content. It is immutable once produced by a Generate call; writing to disk
// is the only operation that touches the filesystem.
type GeneratedProject struct {
	paths []string
	files map[string]string
}

// NewGeneratedProject returns an empty generated project.
func NewGeneratedProject() *GeneratedProject {
	return &GeneratedProject{files: make(map[string]string)}
}

// Add records a file. Re-adding a path replaces its content but keeps its
// original position in the order.
func (p *GeneratedProject) Add(path, content string) {
	if _, ok := p.files[path]; !ok {
		p.paths = append(p.paths, path)
	}
	p.files[path] = content
}

// FileCount returns the number of generated files.
func (p *GeneratedProject) FileCount() int { return len(p.paths) }

// Paths returns the output paths in insertion order.
func (p *GeneratedProject) Paths() []string {
	out := make([]string, len(p.paths))
	copy(out, p.paths)
	return out
}

// Content returns the content for a path.
func (p *GeneratedProject) Content(path string) (string, bool) {
	c, ok := p.files[path]
	return c, ok
}

// Files returns the full path→content map. The returned map is a copy.
func (p *GeneratedProject) Files() map[string]string {
	out := make(map[string]string, len(p.files))
	for k, v := range p.files {
		out[k] = v
	}
	return out
}

// WriteTo materializes every file under dir, creating parent directories as
// needed. Writes run in parallel; on failure the first error reports which
// file failed, and files already written remain on disk. There is no atomic
// multi-file commit.
func (p *GeneratedProject) WriteTo(dir string) error {
	return p.writeTo(dir, nil)
}

// WriteToCached is WriteTo with an incremental cache: files whose content
// hash matches the cache are skipped, and the cache is updated for files
// actually written.
func (p *GeneratedProject) WriteToCached(dir string, cache *BuildCache) error {
	return p.writeTo(dir, cache)
}

func (p *GeneratedProject) writeTo(dir string, cache *BuildCache) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dir, Cause: err}
	}
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, rel := range p.paths {
		content := p.files[rel]
		eg.Go(func() error {
			if cache != nil && cache.Unchanged(rel, content) {
				return nil
			}
			full := filepath.Join(dir, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return &WriteError{Path: rel, Cause: err}
			}
			if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
				return &WriteError{Path: rel, Cause: err}
			}
			if cache != nil {
				return cache.Record(rel, content)
			}
			return nil
		})
	}
	return eg.Wait()
}
