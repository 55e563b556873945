package server

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// assetCache serves static assets with an in-memory copy keyed by a
// version tag and backed by an on-disk cache directory. Reads that hit
// the filesystem refresh the cache; when the filesystem read fails the
// cached copy is served instead, and with no cached copy the response is
// a plain-text 503. Cache directories for other version tags are purged
// on startup.
type assetCache struct {
	dir     string
	version string
	root    string
	logger  *zap.Logger

	mu      sync.RWMutex
	entries map[string][]byte
}

func newAssetCache(dir, version string, logger *zap.Logger) (*assetCache, error) {
	root := filepath.Join(os.TempDir(), "shiftroster-assets")
	c := &assetCache{
		dir:     dir,
		version: version,
		root:    root,
		logger:  logger,
		entries: make(map[string][]byte),
	}
	if err := c.purgeStale(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.versionDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset cache dir: %w", err)
	}
	c.warm()
	return c, nil
}

func (c *assetCache) versionDir() string {
	return filepath.Join(c.root, c.version)
}

// purgeStale removes cache directories left behind by other versions
func (c *assetCache) purgeStale() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read asset cache root: %w", err)
	}
	for _, e := range entries {
		if e.Name() == c.version {
			continue
		}
		c.logger.Debug("Purging stale asset cache", zap.String("version", e.Name()))
		if err := os.RemoveAll(filepath.Join(c.root, e.Name())); err != nil {
			return fmt.Errorf("failed to purge stale asset cache: %w", err)
		}
	}
	return nil
}

// warm loads any previously cached payloads for the current version
func (c *assetCache) warm() {
	_ = filepath.WalkDir(c.versionDir(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(c.versionDir(), p)
		if err != nil {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		c.entries[filepath.ToSlash(rel)] = data
		return nil
	})
	if len(c.entries) > 0 {
		c.logger.Debug("Warmed asset cache", zap.Int("entries", len(c.entries)))
	}
}

// get returns the asset payload, preferring a fresh filesystem read and
// falling back to the cached copy. The boolean is false when neither is
// available.
func (c *assetCache) get(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, filepath.FromSlash(name)))
	if err == nil {
		c.put(name, data)
		return data, true
	}

	c.mu.RLock()
	cached, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		c.logger.Debug("Serving asset from cache", zap.String("asset", name))
	}
	return cached, ok
}

func (c *assetCache) put(name string, data []byte) {
	c.mu.Lock()
	c.entries[name] = data
	c.mu.Unlock()

	cachePath := filepath.Join(c.versionDir(), filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		c.logger.Warn("failed to persist cached asset", zap.String("asset", name), zap.Error(err))
	}
}

// serveAsset handles GET /assets/*filepath
func (s *Server) serveAsset(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	name = path.Clean(name)
	if name == "." || strings.HasPrefix(name, "..") {
		c.String(http.StatusBadRequest, "invalid asset path")
		return
	}

	data, ok := s.assets.get(name)
	if !ok {
		c.String(http.StatusServiceUnavailable, "asset unavailable")
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}
