// Package projectfs reads a project's generated files off the filesystem so
// they can be replayed to the model as context. The snapshot is transient:
// nothing here is persisted or versioned.
package projectfs

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rileyblackwell/imagi-oasis/internal/model"
)

const (
	templatesDir = "templates"
	cssDir       = "static/css"
)

// Loader reads project file snapshots from a projects root directory, one
// subdirectory per project.
type Loader struct {
	root string
}

func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Load returns the project's files in prompt order: base.html first (pages
// extend it, so the model must see it before them), index.html next (the
// canonical landing page), remaining templates lexicographically, then
// stylesheets. Missing files and directories are skipped silently — an empty
// project is a valid starting state, not an error.
func (l *Loader) Load(projectID string) []model.ProjectFile {
	projectRoot := filepath.Join(l.root, projectID)

	var files []model.ProjectFile
	files = append(files, l.loadTemplates(projectRoot)...)
	files = append(files, l.loadStylesheets(projectRoot)...)
	return files
}

// LoadFile returns a single file's snapshot by its conversation-scoped name
// (e.g. "about.html" or "styles.css"), or false when it does not exist yet.
// The chat agent uses this to include only the file the user is looking at.
func (l *Loader) LoadFile(projectID, filename string) (model.ProjectFile, bool) {
	projectRoot := filepath.Join(l.root, projectID)

	var path, fileType string
	switch {
	case strings.HasSuffix(filename, ".css"):
		path = filepath.Join(projectRoot, cssDir, filename)
		fileType = "css"
	default:
		path = filepath.Join(projectRoot, templatesDir, filename)
		fileType = "html"
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return model.ProjectFile{}, false
	}
	return model.ProjectFile{Path: filename, Content: string(content), Type: fileType}, true
}

// WriteFile persists generated content into the project tree, creating the
// templates or css directory as needed.
func (l *Loader) WriteFile(projectID, filename, content string) error {
	projectRoot := filepath.Join(l.root, projectID)

	var dir string
	if strings.HasSuffix(filename, ".css") {
		dir = filepath.Join(projectRoot, cssDir)
	} else {
		dir = filepath.Join(projectRoot, templatesDir)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filename), []byte(content), 0640)
}

func (l *Loader) loadTemplates(projectRoot string) []model.ProjectFile {
	dir := filepath.Join(projectRoot, templatesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		names = append(names, entry.Name())
	}
	sortTemplates(names)

	var files []model.ProjectFile
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("Skipping unreadable template", "file", name, "error", err)
			continue
		}
		files = append(files, model.ProjectFile{Path: name, Content: string(content), Type: "html"})
	}
	return files
}

func (l *Loader) loadStylesheets(projectRoot string) []model.ProjectFile {
	dir := filepath.Join(projectRoot, cssDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".css") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var files []model.ProjectFile
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("Skipping unreadable stylesheet", "file", name, "error", err)
			continue
		}
		files = append(files, model.ProjectFile{Path: name, Content: string(content), Type: "css"})
	}
	return files
}

// sortTemplates orders template names as base.html, index.html, then the
// rest lexicographically.
func sortTemplates(names []string) {
	rank := func(name string) int {
		switch name {
		case "base.html":
			return 0
		case "index.html":
			return 1
		default:
			return 2
		}
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}
