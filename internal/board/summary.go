package board

import (
	"math"
	"strings"
	"unicode"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/date"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// Select filters, sorts and truncates a copy of tasks.
func Select(tasks []task.Task, opts ListOptions) []task.Task {
	out := Filter(tasks, opts.Filter)
	if opts.SortBy != "" {
		Sort(out, opts.SortBy, opts.Reverse)
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// PriorityCount holds a count for a priority level.
type PriorityCount struct {
	Priority task.Priority `json:"priority"`
	Count    int           `json:"count"`
}

// CategoryCount holds a count for a category.
type CategoryCount struct {
	Category task.Category `json:"category"`
	Count    int           `json:"count"`
}

// ListCount holds per-list totals.
type ListCount struct {
	ListID    string `json:"list_id"`
	Title     string `json:"title"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// Overview is the dashboard summary across every list.
type Overview struct {
	TotalTasks       int             `json:"total_tasks"`
	Completed        int             `json:"completed"`
	Pending          int             `json:"pending"`
	CompletionRate   float64         `json:"completion_rate"` // percent, one decimal
	Overdue          int             `json:"overdue"`
	MinutesPending   int             `json:"estimated_minutes_pending"`
	MinutesCompleted int             `json:"estimated_minutes_completed"`
	Pomodoros        int             `json:"completed_pomodoros"`
	Priorities       []PriorityCount `json:"priorities"`
	Categories       []CategoryCount `json:"categories"`
	Lists            []ListCount     `json:"lists"`
}

// Summary computes the dashboard overview. Priority counts cover open tasks
// only; tasks whose list no longer exists count toward the totals but not
// toward any list row.
func Summary(tasks []task.Task, lists []list.List, pomodoros int, today date.Date) Overview {
	ov := Overview{TotalTasks: len(tasks), Pomodoros: pomodoros}

	prio := make(map[task.Priority]int, len(task.Priorities))
	cats := make(map[task.Category]int, len(task.Categories))
	byList := make(map[string]*ListCount, len(lists))
	rows := make([]*ListCount, 0, len(lists))
	for _, l := range lists {
		row := &ListCount{ListID: l.ID, Title: l.Title}
		byList[l.ID] = row
		rows = append(rows, row)
	}

	for _, t := range tasks {
		row := byList[t.ListID]
		if row != nil {
			row.Total++
		}
		if t.Completed {
			ov.Completed++
			ov.MinutesCompleted += t.EstimatedTime
			if row != nil {
				row.Completed++
			}
		} else {
			ov.Pending++
			ov.MinutesPending += t.EstimatedTime
			prio[t.Priority]++
		}
		if t.Overdue(today) {
			ov.Overdue++
		}
		if t.Category != task.CategoryNone {
			cats[t.Category]++
		}
	}

	if ov.TotalTasks > 0 {
		rate := float64(ov.Completed) / float64(ov.TotalTasks) * 100 //nolint:mnd // percent
		ov.CompletionRate = math.Round(rate*10) / 10                  //nolint:mnd // one decimal
	}

	ov.Priorities = make([]PriorityCount, 0, len(task.Priorities))
	for i := len(task.Priorities) - 1; i >= 0; i-- {
		p := task.Priorities[i]
		ov.Priorities = append(ov.Priorities, PriorityCount{Priority: p, Count: prio[p]})
	}
	ov.Categories = make([]CategoryCount, 0, len(task.Categories))
	for _, c := range task.Categories {
		ov.Categories = append(ov.Categories, CategoryCount{Category: c, Count: cats[c]})
	}
	ov.Lists = make([]ListCount, 0, len(rows))
	for _, row := range rows {
		ov.Lists = append(ov.Lists, *row)
	}
	return ov
}

// ParseIDs splits a comma-separated ID string into deduplicated IDs.
// An ID with inner whitespace is rejected.
func ParseIDs(arg string) ([]string, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[string]bool, len(parts))
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		if strings.ContainsFunc(p, unicode.IsSpace) {
			return nil, task.ValidateTaskID(p)
		}
		seen[p] = true
		ids = append(ids, p)
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}
