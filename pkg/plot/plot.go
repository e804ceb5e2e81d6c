// Package plot loads and caches scene plot records from JSON files.
package plot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Record is one plot entry for a scene at a given level.
type Record struct {
	Scene string `json:"scene"`
	Level int    `json:"level"`
	Plot  string `json:"plot"`
	Msg   string `json:"msg"`
}

// Manager loads plot files from a directory and caches records keyed by
// scene and level. Files are named plot_<scene>.json and contain an array
// of records.
type Manager struct {
	plotsDir string
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]*Record
}

// NewManager creates a plot manager rooted at plotsDir.
func NewManager(plotsDir string, logger *slog.Logger) *Manager {
	return &Manager{
		plotsDir: plotsDir,
		logger:   logger,
		cache:    make(map[string]*Record),
	}
}

func cacheKey(scene string, level int) string {
	return fmt.Sprintf("%s_level%d", scene, level)
}

// Load returns the plot record for a scene and level, or nil if no plot
// file exists or no record matches. Results are cached.
func (m *Manager) Load(scene string, level int) *Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := cacheKey(scene, level)
	if rec, ok := m.cache[key]; ok {
		return rec
	}

	path := filepath.Join(m.plotsDir, "plot_"+scene+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("Failed to read plot file", "path", path, "error", err)
		}
		return nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		m.logger.Warn("Failed to parse plot file", "path", path, "error", err)
		return nil
	}

	for i := range records {
		rec := &records[i]
		if rec.Level == 0 {
			rec.Level = 1
		}
		if rec.Scene == scene && rec.Level == level {
			m.cache[key] = rec
			return rec
		}
	}
	return nil
}

// PlotText returns the plot text for a scene and level, or "" if absent.
func (m *Manager) PlotText(scene string, level int) string {
	if rec := m.Load(scene, level); rec != nil {
		return rec.Plot
	}
	return ""
}

// DefaultMessage returns the fallback message for a scene and level.
func (m *Manager) DefaultMessage(scene string, level int) string {
	if rec := m.Load(scene, level); rec != nil && rec.Msg != "" {
		return rec.Msg
	}
	return "..."
}

// Scenes lists the scene names with a plot file on disk.
func (m *Manager) Scenes() []string {
	entries, err := os.ReadDir(m.plotsDir)
	if err != nil {
		return nil
	}
	var scenes []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "plot_") && strings.HasSuffix(name, ".json") {
			scenes = append(scenes, strings.TrimSuffix(strings.TrimPrefix(name, "plot_"), ".json"))
		}
	}
	return scenes
}

// Reload drops any cached record for a scene and level and loads it again.
func (m *Manager) Reload(scene string, level int) *Record {
	m.mu.Lock()
	delete(m.cache, cacheKey(scene, level))
	m.mu.Unlock()
	return m.Load(scene, level)
}

// ClearCache empties the record cache.
func (m *Manager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]*Record)
}
