package task

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	exportFileMode = 0o600
	exportDirMode  = 0o750
	markdownExt    = ".md"
	shortIDLength  = 8
)

// ReadMarkdown parses a task file: YAML frontmatter followed by the
// description as the markdown body.
func ReadMarkdown(path string) (Task, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return Task{}, fmt.Errorf("reading task file: %w", err)
	}

	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return Task{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var t Task
	if err := yaml.Unmarshal(fm, &t); err != nil {
		return Task{}, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}
	t.Description = strings.TrimRight(body, "\n")
	return t, nil
}

// WriteMarkdown serializes t as frontmatter plus description body.
func WriteMarkdown(path string, t Task) error {
	fm, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n")
	if t.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Description)
		if !strings.HasSuffix(t.Description, "\n") {
			buf.WriteString("\n")
		}
	}
	return os.WriteFile(path, buf.Bytes(), exportFileMode)
}

// splitFrontmatter splits a markdown file into YAML frontmatter and body.
func splitFrontmatter(data []byte) ([]byte, string, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return nil, "", errors.New("file does not start with YAML frontmatter (---)")
	}

	rest := content[len("---\n"):]
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		if !strings.HasSuffix(rest, "\n---") {
			return nil, "", errors.New("unclosed frontmatter (missing closing ---)")
		}
		idx = len(rest) - len("\n---")
	}

	fm := rest[:idx]
	body := ""
	if end := idx + len("\n---\n"); end < len(rest) {
		body = strings.TrimLeft(rest[end:], "\n")
	}
	return []byte(fm), body, nil
}

// MarkdownFilename names the export file for t: slugged title plus a short ID.
func MarkdownFilename(t Task) string {
	short := t.ID
	if len(short) > shortIDLength {
		short = short[:shortIDLength]
	}
	slug := GenerateSlug(t.Title)
	if slug == "" {
		return short + markdownExt
	}
	return slug + "-" + short + markdownExt
}

// Export writes one markdown file per task into dir and returns the paths written.
func Export(dir string, tasks []Task) ([]string, error) {
	if err := os.MkdirAll(dir, exportDirMode); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	paths := make([]string, 0, len(tasks))
	for _, t := range tasks {
		path := filepath.Join(dir, MarkdownFilename(t))
		if err := WriteMarkdown(path, t); err != nil {
			return paths, fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadWarning describes a file that could not be parsed during import.
type ReadWarning struct {
	File string // base filename
	Err  error
}

// Import reads every markdown file in dir, skipping malformed files instead
// of aborting. Imported tasks are normalized.
func Import(dir string) ([]Task, []ReadWarning, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading import directory: %w", err)
	}

	var tasks []Task
	var warnings []ReadWarning
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != markdownExt {
			continue
		}
		t, readErr := ReadMarkdown(filepath.Join(dir, entry.Name()))
		if readErr != nil {
			warnings = append(warnings, ReadWarning{File: entry.Name(), Err: readErr})
			continue
		}
		tasks = append(tasks, Normalize(t))
	}
	return tasks, warnings, nil
}
