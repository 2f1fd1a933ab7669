// Package planner lays tasks out on a week by due date.
package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/date"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

const daysPerWeek = 7

// Day is one column of the weekly planner.
type Day struct {
	Date    date.Date   `json:"date"`
	Weekday string      `json:"weekday"`
	Tasks   []task.Task `json:"tasks"`
	Minutes int         `json:"estimated_minutes"`
}

// Week returns the seven days of the week containing day, starting on
// weekStart, each holding the tasks due that day. Trashed tasks and tasks
// without a due date are left out. Within a day tasks sort by priority,
// high first, then by title.
func Week(tasks []task.Task, day date.Date, weekStart time.Weekday) []Day {
	start := day.StartOfWeek(weekStart)
	days := make([]Day, daysPerWeek)
	for i := range days {
		d := start.AddDays(i)
		days[i] = Day{Date: d, Weekday: d.Weekday().String(), Tasks: []task.Task{}}
	}

	for _, t := range tasks {
		if t.DueDate == nil || t.DeletedAt != nil {
			continue
		}
		for i := range days {
			if days[i].Date.Same(*t.DueDate) {
				days[i].Tasks = append(days[i].Tasks, t)
				days[i].Minutes += t.EstimatedTime
				break
			}
		}
	}
	for i := range days {
		sortDay(days[i].Tasks)
	}
	return days
}

func sortDay(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return strings.ToLower(tasks[i].Title) < strings.ToLower(tasks[j].Title)
	})
}

// Unscheduled returns the open tasks without a due date, in store order.
func Unscheduled(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0)
	for _, t := range tasks {
		if t.DueDate == nil && t.DeletedAt == nil && !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// ParseWeekday accepts an English weekday name ("monday", "Sun"); ok is
// false for anything else.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 { //nolint:mnd // shortest accepted abbreviation
		return time.Sunday, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.HasPrefix(strings.ToLower(d.String()), s) {
			return d, true
		}
	}
	return time.Sunday, false
}
