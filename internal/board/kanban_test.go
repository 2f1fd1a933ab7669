package board

import (
	"reflect"
	"testing"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

func testBoard() []Column {
	cols := DefaultColumns()
	cols[0].Tasks = []task.Task{
		{ID: "T1", Title: "write", Priority: task.PriorityHigh, EstimatedTime: 30, ListID: "L1"},
		{ID: "T2", Title: "read", Priority: task.PriorityLow, ListID: "L1"},
	}
	cols[1].Tasks = []task.Task{
		{ID: "T3", Title: "draft", Priority: task.PriorityMedium, ListID: "L1"},
	}
	cols[2].Tasks = []task.Task{
		{ID: "T4", Title: "shipped", Completed: true, Priority: task.PriorityMedium, ListID: "L1"},
	}
	return cols
}

func TestCompleteTaskChangesOnlyCompleted(t *testing.T) {
	t.Parallel()
	before := testBoard()
	snapshot := Clone(before)

	after, got, ok := CompleteTask(before, "T1", true)
	if !ok {
		t.Fatal("Expected T1 to be found")
	}

	want := snapshot[0].Tasks[0]
	want.Completed = true
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if after[0].Tasks[0] != want {
		t.Errorf("Expected board copy %+v, got %+v", want, after[0].Tasks[0])
	}
	if after[0].Tasks[1] != snapshot[0].Tasks[1] {
		t.Error("Expected sibling task untouched")
	}
	if !reflect.DeepEqual(before, snapshot) {
		t.Error("CompleteTask mutated its input")
	}

	if _, _, ok := CompleteTask(before, "missing", true); ok {
		t.Error("Expected missing task to report ok=false")
	}
}

func TestMoveTaskTogglesCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		id       string
		to       string
		wantDone bool
	}{
		{"into done", "T1", "done", true},
		{"out of done", "T4", "todo", false},
		{"between open columns", "T1", "in-progress", false},
		{"done by title", "T3", "Concluído", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			before := testBoard()
			after, moved, err := MoveTask(before, tt.id, tt.to, -1, DefaultDoneTitle)
			if err != nil {
				t.Fatal(err)
			}
			if moved.Completed != tt.wantDone {
				t.Errorf("Expected completed=%v, got %v", tt.wantDone, moved.Completed)
			}
			col, ok := columnOf(after, tt.id)
			if !ok {
				t.Fatal("Expected task still on board")
			}
			target, _, _ := ResolveColumn(after, tt.to)
			if col != target.ID {
				t.Errorf("Expected task in %q, got %q", target.ID, col)
			}
			if len(FlattenTasks(after)) != len(FlattenTasks(before)) {
				t.Error("Expected task count unchanged")
			}
		})
	}
}

func TestMoveTaskKeepsOtherFields(t *testing.T) {
	t.Parallel()
	before := testBoard()
	_, moved, err := MoveTask(before, "T1", "done", 0, DefaultDoneTitle)
	if err != nil {
		t.Fatal(err)
	}
	want := before[0].Tasks[0]
	want.Completed = true
	if moved != want {
		t.Errorf("Expected %+v, got %+v", want, moved)
	}
}

func TestMoveTaskReorderWithinColumn(t *testing.T) {
	t.Parallel()
	after, _, err := MoveTask(testBoard(), "T2", "todo", 0, DefaultDoneTitle)
	if err != nil {
		t.Fatal(err)
	}
	if after[0].Tasks[0].ID != "T2" || after[0].Tasks[1].ID != "T1" {
		t.Errorf("Expected [T2 T1], got [%s %s]", after[0].Tasks[0].ID, after[0].Tasks[1].ID)
	}
	if after[0].Tasks[0].Completed {
		t.Error("Expected reorder to keep completed=false")
	}
}

func TestMoveTaskErrors(t *testing.T) {
	t.Parallel()
	if _, _, err := MoveTask(testBoard(), "T1", "nowhere", 0, DefaultDoneTitle); !clierr.HasCode(err, clierr.ColumnNotFound) {
		t.Errorf("Expected COLUMN_NOT_FOUND, got %v", err)
	}
	if _, _, err := MoveTask(testBoard(), "nope", "done", 0, DefaultDoneTitle); !clierr.HasCode(err, clierr.TaskNotFound) {
		t.Errorf("Expected TASK_NOT_FOUND, got %v", err)
	}
}

func TestAddTaskDoesNotDuplicate(t *testing.T) {
	t.Parallel()
	after, err := AddTask(testBoard(), "in-progress", task.Task{ID: "T1", Title: "write"})
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, tk := range FlattenTasks(after) {
		if tk.ID == "T1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected one T1 on the board, got %d", count)
	}
	if col, _ := columnOf(after, "T1"); col != "in-progress" {
		t.Errorf("Expected T1 in in-progress, got %q", col)
	}
}

func TestRemoveTask(t *testing.T) {
	t.Parallel()
	before := testBoard()
	removed := RemoveTask(before, "T3")
	if _, ok := columnOf(removed, "T3"); ok {
		t.Error("Expected T3 removed")
	}
	if _, ok := columnOf(before, "T3"); !ok {
		t.Error("Expected input board left untouched")
	}
}

// columnOf returns the ID of the column holding id.
func columnOf(columns []Column, id string) (string, bool) {
	for _, c := range columns {
		if _, ok := task.Find(c.Tasks, id); ok {
			return c.ID, true
		}
	}
	return "", false
}

func TestColumnOperations(t *testing.T) {
	t.Parallel()
	cols, col, err := AddColumn(testBoard(), "Revisão")
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 4 || cols[3].ID != col.ID {
		t.Fatalf("Expected new column appended, got %+v", cols)
	}
	if _, _, err := AddColumn(cols, "revisão"); !clierr.HasCode(err, clierr.AlreadyExists) {
		t.Errorf("Expected ALREADY_EXISTS, got %v", err)
	}

	cols, err = RenameColumn(cols, col.ID, "Review")
	if err != nil {
		t.Fatal(err)
	}
	if cols[3].Title != "Review" {
		t.Errorf("Expected renamed column, got %q", cols[3].Title)
	}

	if _, err := RemoveColumn(cols, "todo"); !clierr.HasCode(err, clierr.ColumnNotEmpty) {
		t.Errorf("Expected COLUMN_NOT_EMPTY, got %v", err)
	}
	cols, err = RemoveColumn(cols, "review")
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 3 {
		t.Errorf("Expected 3 columns, got %d", len(cols))
	}

	single := []Column{{ID: "only", Title: "Only", Tasks: []task.Task{}}}
	if _, err := RemoveColumn(single, "only"); !clierr.HasCode(err, clierr.InvalidInput) {
		t.Errorf("Expected INVALID_INPUT removing last column, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	in := []Column{
		{ID: "a", Title: "A", Tasks: []task.Task{{ID: "T1"}, {ID: ""}}},
		{ID: "", Title: "no id"},
		{ID: "a", Title: "dup"},
		{ID: "b", Title: "B", Tasks: []task.Task{{ID: "T1"}, {ID: "T2"}}},
	}
	got := Normalize(in)
	if len(got) != 2 {
		t.Fatalf("Expected 2 columns, got %+v", got)
	}
	if len(got[0].Tasks) != 1 || len(got[1].Tasks) != 1 || got[1].Tasks[0].ID != "T2" {
		t.Errorf("Expected each task in its first column only, got %+v", got)
	}
}
