package domain

import "fmt"

// StatusFilter selects which tasks the backend should return.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterPending   StatusFilter = "pending"
	StatusFilterCompleted StatusFilter = "completed"
)

// ParseStatusFilter parses a status filter string. The empty string
// defaults to "all".
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", StatusFilterAll:
		return StatusFilterAll, nil
	case StatusFilterPending:
		return StatusFilterPending, nil
	case StatusFilterCompleted:
		return StatusFilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid status filter: %s", s)
	}
}

// IsValid checks if the status filter is one of the known values.
func (f StatusFilter) IsValid() bool {
	switch f {
	case StatusFilterAll, StatusFilterPending, StatusFilterCompleted:
		return true
	default:
		return false
	}
}

// SortKey selects the ordering of the task list.
type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByTitle     SortKey = "title"
)

// ParseSortKey parses a sort key string. The empty string defaults
// to "created_at".
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", SortByCreatedAt:
		return SortByCreatedAt, nil
	case SortByTitle:
		return SortByTitle, nil
	default:
		return "", fmt.Errorf("invalid sort key: %s", s)
	}
}

// IsValid checks if the sort key is one of the known values.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByCreatedAt, SortByTitle:
		return true
	default:
		return false
	}
}
