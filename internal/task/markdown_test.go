package task

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/twiced-technology-gmbh/zenta/internal/date"
)

func TestGenerateSlug(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"Revisar relatório", "revisar-relatorio"},
		{"  Hello, World!  ", "hello-world"},
		{"Concluído", "concluido"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := GenerateSlug(tt.in); got != tt.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	due := date.New(2024, 5, 3)
	in := Task{
		ID:            "0b7e6c2a-1111-2222-3333-444455556666",
		Title:         "Write report",
		Priority:      PriorityHigh,
		Category:      CategoryP,
		EstimatedTime: 45,
		Description:   "## Notes\n\n- first draft",
		DueDate:       &due,
		ListID:        "work",
	}

	paths, err := Export(dir, []Task{in})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(paths[0]) != "write-report-0b7e6c2a.md" {
		t.Errorf("Unexpected filename %q", filepath.Base(paths[0]))
	}

	got, err := ReadMarkdown(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != in.ID || got.Title != in.Title || got.Priority != in.Priority ||
		got.Category != in.Category || got.EstimatedTime != in.EstimatedTime ||
		got.Description != in.Description || got.ListID != in.ListID {
		t.Errorf("Expected %+v, got %+v", in, got)
	}
	if got.DueDate == nil || got.DueDate.String() != "2024-05-03" {
		t.Errorf("Expected due date 2024-05-03, got %v", got.DueDate)
	}
}

func TestImportSkipsMalformed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := "---\ntitle: Imported\npriority: low\n---\n\nbody\n"
	if err := os.WriteFile(filepath.Join(dir, "good.md"), []byte(good), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.md"), []byte("no frontmatter"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	tasks, warnings, err := Import(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Imported" || tasks[0].Description != "body" {
		t.Fatalf("Expected one imported task, got %+v", tasks)
	}
	if tasks[0].ID == "" {
		t.Error("Expected imported task to get an ID")
	}
	if len(warnings) != 1 || warnings[0].File != "bad.md" {
		t.Errorf("Expected one warning for bad.md, got %+v", warnings)
	}
}
