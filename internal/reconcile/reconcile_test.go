package reconcile

import (
	"context"
	"reflect"
	"testing"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

func draft() task.Task {
	return task.Task{
		ID:            "T1",
		Title:         "Draft",
		ListID:        "L1",
		Completed:     false,
		Priority:      task.PriorityMedium,
		Category:      task.CategoryNone,
		EstimatedTime: 30,
	}
}

func TestReconcileListTasksScenario(t *testing.T) {
	t.Parallel()
	lists := []list.List{
		{ID: "L1", Title: "Work"},
		{ID: "L2", Title: "Home"},
	}
	tasks := []task.Task{draft()}

	got := ReconcileListTasks(lists, tasks)

	if !reflect.DeepEqual(got[0].Tasks, []task.Task{draft()}) {
		t.Errorf("Expected L1 to hold exactly [T1], got %+v", got[0].Tasks)
	}
	if got[1].Tasks == nil || len(got[1].Tasks) != 0 {
		t.Errorf("Expected L2 to hold [], got %#v", got[1].Tasks)
	}
	if got[0].Title != "Work" || got[1].ID != "L2" {
		t.Error("Expected list identity and order preserved")
	}
}

func TestReconcileListTasksIdempotentAndPure(t *testing.T) {
	t.Parallel()
	lists := []list.List{
		{ID: "a", Title: "A", Tasks: []task.Task{{ID: "stale", ListID: "a"}}},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C", Tasks: []task.Task{}},
	}
	tasks := []task.Task{
		{ID: "1", ListID: "b"},
		{ID: "2", ListID: "a"},
		{ID: "3", ListID: "missing"},
		{ID: "4", ListID: "b"},
	}
	listsBefore := []list.List{
		{ID: "a", Title: "A", Tasks: []task.Task{{ID: "stale", ListID: "a"}}},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C", Tasks: []task.Task{}},
	}
	tasksBefore := append([]task.Task(nil), tasks...)

	once := ReconcileListTasks(lists, tasks)
	twice := ReconcileListTasks(once, tasks)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected idempotence\nonce:  %+v\ntwice: %+v", once, twice)
	}
	if !reflect.DeepEqual(lists, listsBefore) || !reflect.DeepEqual(tasks, tasksBefore) {
		t.Error("ReconcileListTasks mutated its inputs")
	}
	if len(once[0].Tasks) != 1 || once[0].Tasks[0].ID != "2" {
		t.Errorf("Expected stale cache replaced by [2], got %+v", once[0].Tasks)
	}
	if len(once[1].Tasks) != 2 || once[1].Tasks[0].ID != "1" || once[1].Tasks[1].ID != "4" {
		t.Errorf("Expected [1 4] in task-store order, got %+v", once[1].Tasks)
	}
}

func TestProjectColumns(t *testing.T) {
	t.Parallel()
	cols := board.DefaultColumns()
	cols[0].Tasks = []task.Task{
		{ID: "gone", Title: "deleted elsewhere", ListID: "L1"},
		{ID: "T1", Title: "old title", ListID: "L1"},
	}
	cols[1].Tasks = []task.Task{{ID: "T2", Title: "moved to other list", ListID: "L1"}}
	snapshot := board.Clone(cols)

	all := []task.Task{
		{ID: "T1", Title: "new title", ListID: "L1"},
		{ID: "T2", Title: "moved to other list", ListID: "L2"},
		{ID: "T3", Title: "new open", ListID: "L1"},
		{ID: "T4", Title: "new done", ListID: "L1", Completed: true},
	}

	got := ProjectColumns(cols, all, "L1", board.DefaultDoneTitle)

	if len(got[0].Tasks) != 2 || got[0].Tasks[0].Title != "new title" || got[0].Tasks[1].ID != "T3" {
		t.Errorf("Expected [T1(new title) T3] in first column, got %+v", got[0].Tasks)
	}
	if len(got[1].Tasks) != 0 {
		t.Errorf("Expected task of another list dropped, got %+v", got[1].Tasks)
	}
	if len(got[2].Tasks) != 1 || got[2].Tasks[0].ID != "T4" {
		t.Errorf("Expected completed task in done column, got %+v", got[2].Tasks)
	}
	if !reflect.DeepEqual(cols, snapshot) {
		t.Error("ProjectColumns mutated its input")
	}
	if again := ProjectColumns(got, all, "L1", board.DefaultDoneTitle); !reflect.DeepEqual(again, got) {
		t.Errorf("Expected projection to be stable, got %+v", again)
	}
}

func TestColumnsIntoList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := kv.NewAdapter(kv.NewMemoryBackend(), 0)
	lists := list.NewStore(a)
	if !lists.Save(ctx, []list.List{{ID: "L1", Title: "Work"}, {ID: "L2", Title: "Home"}}) {
		t.Fatal("seeding lists failed")
	}
	r := New(lists)

	cols := board.DefaultColumns()
	cols[0].Tasks = []task.Task{{ID: "T2", ListID: "L1"}, {ID: "X", ListID: "L2"}}
	cols[2].Tasks = []task.Task{{ID: "T1", ListID: "L1", Completed: true}}
	snapshot := board.Clone(cols)

	if !r.ColumnsIntoList(ctx, cols, "L1") {
		t.Fatal("ColumnsIntoList returned false")
	}
	first, _ := a.Backend().Get(ctx, list.KeyLists)

	if !r.ColumnsIntoList(ctx, cols, "L1") {
		t.Fatal("second ColumnsIntoList returned false")
	}
	second, _ := a.Backend().Get(ctx, list.KeyLists)

	if string(first) != string(second) {
		t.Errorf("Expected idempotent write\nfirst:  %s\nsecond: %s", first, second)
	}
	if !reflect.DeepEqual(cols, snapshot) {
		t.Error("ColumnsIntoList mutated its input")
	}

	got := lists.Load(ctx)
	if len(got[0].Tasks) != 2 || got[0].Tasks[0].ID != "T2" || got[0].Tasks[1].ID != "T1" {
		t.Errorf("Expected L1 tasks [T2 T1], got %+v", got[0].Tasks)
	}
	if len(got[1].Tasks) != 0 {
		t.Errorf("Expected L2 untouched, got %+v", got[1].Tasks)
	}

	if !r.ColumnsIntoList(ctx, cols, "unknown") {
		t.Error("Expected unknown list to be a successful no-op")
	}
}
