package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/Zachkp/work-timeline/internal/models"
)

// Source holds the current catalog and swaps it when the backing file changes
type Source struct {
	path string

	mu      sync.RWMutex
	current *models.Catalog
}

// NewSource creates a Source serving c. When path is non-empty, Reload and
// Watch re-read that file.
func NewSource(c *models.Catalog, path string) *Source {
	return &Source{path: path, current: c}
}

// Current returns the catalog in use
func (s *Source) Current() *models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Lookup resolves a project key against the current catalog
func (s *Source) Lookup(key string) (models.Project, bool) {
	return s.Current().Project(key)
}

// Reload re-reads the backing file. The previous catalog stays in place on error.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}

	c, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()

	klog.Infof("reloaded %d projects from %s", len(c.Projects), s.path)
	return nil
}

// Watch reloads the catalog whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	klog.Infof("watching %s for changes ...", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			klog.V(1).Infof("event: %s", event)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if err := s.Reload(); err != nil {
					klog.Warningf("keeping previous work data: %v", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watch error: %v", err)
		}
	}
}
