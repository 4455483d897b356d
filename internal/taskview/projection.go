package taskview

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskdash/internal/domain"
)

// titleCollator performs locale-aware title comparison. The engine is
// single-goroutine, so sharing one collator is fine.
var titleCollator = collate.New(language.Und)

// Derive computes the displayed projection from the authoritative
// collection and the projection parameters. It is a pure function: the
// input slice and its tasks are never mutated, and the same inputs
// always produce the same ordered output.
//
// Steps, in order:
//  1. keep tasks whose completion state matches the status filter
//  2. keep tasks matching the case-insensitive search term
//  3. stable sort by title (collation, ascending) or created_at (newest first)
func Derive(tasks []*domain.Task, filter domain.StatusFilter, term string, key domain.SortKey) []*domain.Task {
	projection := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if !matchesFilter(task, filter) {
			continue
		}
		if !task.Matches(term) {
			continue
		}
		projection = append(projection, task)
	}

	sort.SliceStable(projection, func(i, j int) bool {
		if key == domain.SortByTitle {
			return titleCollator.CompareString(projection[i].Title, projection[j].Title) < 0
		}
		return projection[i].CreatedAt.After(projection[j].CreatedAt)
	})

	return projection
}

func matchesFilter(task *domain.Task, filter domain.StatusFilter) bool {
	switch filter {
	case domain.StatusFilterCompleted:
		return task.Completed
	case domain.StatusFilterPending:
		return !task.Completed
	default:
		return true
	}
}
