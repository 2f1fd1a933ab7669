package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-05-01", want: "2024-05-01"},
		{in: "2024-05-01T13:45:00.000Z", want: "2024-05-01"},
		{in: "2024-05-01T23:30:00-03:00", want: "2024-05-01"},
		{in: "01/05/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	t.Parallel()
	wed := New(2024, time.May, 1) // a Wednesday
	tests := []struct {
		start time.Weekday
		want  string
	}{
		{time.Monday, "2024-04-29"},
		{time.Sunday, "2024-04-28"},
		{time.Wednesday, "2024-05-01"},
		{time.Thursday, "2024-04-25"},
	}
	for _, tt := range tests {
		if got := wed.StartOfWeek(tt.start).String(); got != tt.want {
			t.Errorf("StartOfWeek(%s) = %s, want %s", tt.start, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()
	type wrapper struct {
		Due *Date `json:"dueDate,omitempty"`
	}
	d := New(2024, time.December, 31)
	data, err := json.Marshal(wrapper{Due: &d})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"dueDate":"2024-12-31"}` {
		t.Errorf("Marshal = %s", data)
	}

	var w wrapper
	if err := json.Unmarshal(data, &w); err != nil {
		t.Fatal(err)
	}
	if w.Due == nil || !w.Due.Same(d) {
		t.Errorf("Unmarshal = %v, want %s", w.Due, d)
	}

	if err := json.Unmarshal([]byte(`{"dueDate":"tomorrow"}`), &w); err == nil {
		t.Error("expected error for invalid date")
	}
}
