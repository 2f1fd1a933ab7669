package task

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sample() []Task {
	return []Task{
		{ID: "T1", Title: "one", Priority: PriorityLow, ListID: "default"},
		{ID: "T2", Title: "two", Priority: PriorityHigh, ListID: "work"},
		{ID: "T3", Title: "three", Priority: PriorityMedium, ListID: "default"},
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	t.Parallel()
	tasks := sample()
	updated := Task{ID: "T2", Title: "two v2", Priority: PriorityLow, ListID: "work"}

	got := Upsert(tasks, updated)

	if len(got) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(got))
	}
	if !reflect.DeepEqual(got[1], updated) {
		t.Errorf("Expected T2 replaced at index 1, got %+v", got[1])
	}
	if tasks[1].Title != "two" {
		t.Error("Upsert mutated its input")
	}
}

func TestUpsertAppends(t *testing.T) {
	t.Parallel()
	got := Upsert(sample(), Task{ID: "T4", Title: "four"})
	if len(got) != 4 || got[3].ID != "T4" {
		t.Fatalf("Expected T4 appended, got %+v", got)
	}
}

func TestUpsertIdempotent(t *testing.T) {
	t.Parallel()
	x := Task{ID: "T2", Title: "same", Priority: PriorityHigh}

	once := Upsert(sample(), x)
	twice := Upsert(once, x)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected saving twice to equal saving once\nonce:  %+v\ntwice: %+v", once, twice)
	}
	count := 0
	for _, task := range twice {
		if task.ID == "T2" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one T2, got %d", count)
	}
}

func TestUpsertCollapsesDuplicates(t *testing.T) {
	t.Parallel()
	tasks := []Task{{ID: "A"}, {ID: "B"}, {ID: "A", Title: "dup"}}
	got := Upsert(tasks, Task{ID: "A", Title: "new"})
	want := []Task{{ID: "A", Title: "new"}, {ID: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	tasks := sample()

	got := Remove(tasks, "T1")
	if _, ok := Find(got, "T1"); ok {
		t.Error("Expected T1 to be removed")
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 tasks, got %d", len(got))
	}
	if len(Remove(tasks, "missing")) != 3 {
		t.Error("Removing an unknown ID should be a no-op")
	}
	if len(tasks) != 3 {
		t.Error("Remove mutated its input")
	}
}

func TestFindPrefix(t *testing.T) {
	t.Parallel()
	tasks := []Task{{ID: "abc123"}, {ID: "abd456"}, {ID: "xyz"}}

	if got, found, _ := FindPrefix(tasks, "abc"); !found || got.ID != "abc123" {
		t.Errorf("Expected abc123, got %q found=%v", got.ID, found)
	}
	if _, found, ambiguous := FindPrefix(tasks, "ab"); found || !ambiguous {
		t.Errorf("Expected ambiguous prefix, got found=%v ambiguous=%v", found, ambiguous)
	}
	if _, found, _ := FindPrefix(tasks, "q"); found {
		t.Error("Expected no match")
	}
}

func TestInList(t *testing.T) {
	t.Parallel()
	got := InList(sample(), "default")
	if len(got) != 2 || got[0].ID != "T1" || got[1].ID != "T3" {
		t.Errorf("Expected [T1 T3], got %+v", got)
	}
	if got := InList(sample(), "none"); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	got := Normalize(Task{Title: "  padded  ", EstimatedTime: -5})
	if got.ID == "" {
		t.Error("Expected an ID to be generated")
	}
	if got.Title != "padded" {
		t.Errorf("Expected trimmed title, got %q", got.Title)
	}
	if got.Priority != PriorityMedium {
		t.Errorf("Expected medium priority, got %q", got.Priority)
	}
	if got.EstimatedTime != 0 {
		t.Errorf("Expected estimate clamped to 0, got %d", got.EstimatedTime)
	}
}

func TestCategoryJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(Task{ID: "T1", Title: "x", Priority: PriorityLow})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if v, ok := raw["category"]; !ok || v != nil {
		t.Errorf("Expected category null, got %#v", raw["category"])
	}

	var task Task
	if err := json.Unmarshal([]byte(`{"id":"T1","category":"b"}`), &task); err != nil {
		t.Fatal(err)
	}
	if task.Category != CategoryB {
		t.Errorf("Expected category b, got %q", task.Category)
	}
	if err := json.Unmarshal([]byte(`{"id":"T1","category":null}`), &task); err != nil {
		t.Fatal(err)
	}
	if task.Category != CategoryNone {
		t.Errorf("Expected empty category, got %q", task.Category)
	}
}
