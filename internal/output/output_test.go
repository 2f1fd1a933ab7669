package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

func TestDetect(t *testing.T) {
	t.Setenv("ZENTA_OUTPUT", "")
	if got := Detect(true, false, true, "table"); got != FormatJSON {
		t.Errorf("Expected json flag to win, got %v", got)
	}
	if got := Detect(false, false, false, "compact"); got != FormatCompact {
		t.Errorf("Expected configured compact, got %v", got)
	}
	if got := Detect(false, false, false, ""); got != FormatTable {
		t.Errorf("Expected table default, got %v", got)
	}
	t.Setenv("ZENTA_OUTPUT", "json")
	if got := Detect(false, false, false, "compact"); got != FormatJSON {
		t.Errorf("Expected env to beat config, got %v", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()
	tests := map[int]string{0: "0m", 45: "45m", 60: "1h", 95: "1h 35m"}
	for in, want := range tests {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestTaskCompact(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	TaskCompact(&buf, []task.Task{{
		ID: "0123456789", Title: "Write report", Completed: true,
		Priority: task.PriorityHigh, Category: task.CategoryB, EstimatedTime: 30,
	}})
	want := "01234567 [x] [high] Write report (b) est:30m\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestOverviewCompact(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	OverviewCompact(&buf, board.Overview{
		TotalTasks: 4, Completed: 1, Pending: 3, CompletionRate: 25,
		Priorities: []board.PriorityCount{{Priority: task.PriorityHigh, Count: 2}},
		Lists:      []board.ListCount{{ListID: "default", Title: "Minhas Tarefas", Total: 4, Completed: 1}},
	})
	out := buf.String()
	for _, want := range []string{"4 tasks, 1 done (25.0%)", "Priority: high=2", "Minhas Tarefas: 1/4"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestShortIDAndTruncate(t *testing.T) {
	t.Parallel()
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("Expected short id unchanged, got %q", got)
	}
	if got := truncate("çãõ and more", 6); got != "çãõ..." {
		t.Errorf("Expected rune-aware truncation, got %q", got)
	}
}
