package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/domain"
	"taskdash/internal/validation"
)

func TestNextStatusFilter(t *testing.T) {
	assert.Equal(t, domain.StatusFilterPending, nextStatusFilter(domain.StatusFilterAll))
	assert.Equal(t, domain.StatusFilterCompleted, nextStatusFilter(domain.StatusFilterPending))
	assert.Equal(t, domain.StatusFilterAll, nextStatusFilter(domain.StatusFilterCompleted))
}

func TestNextSortKey(t *testing.T) {
	assert.Equal(t, domain.SortByTitle, nextSortKey(domain.SortByCreatedAt))
	assert.Equal(t, domain.SortByCreatedAt, nextSortKey(domain.SortByTitle))
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, "dark", nextTheme("light"))
	assert.Equal(t, "light", nextTheme("dark"))
	assert.Equal(t, "dark", nextTheme(""), "unknown themes fall back to the light/dark cycle")
}

func TestClampSelection(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		length   int
		want     int
	}{
		{name: "inside range", selected: 1, length: 3, want: 1},
		{name: "past the end after shrink", selected: 5, length: 3, want: 2},
		{name: "empty projection", selected: 2, length: 0, want: 0},
		{name: "negative", selected: -1, length: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampSelection(tt.selected, tt.length))
		})
	}
}

func TestHeaderLine(t *testing.T) {
	line := headerLine("Ada <ada@example.com>", domain.StatusFilterPending, domain.SortByTitle, "", "dark")

	assert.Contains(t, line, "Ada <ada@example.com>")
	assert.Contains(t, line, "Filter: pending")
	assert.Contains(t, line, "Sort: title")
	assert.Contains(t, line, "type / to search")
	assert.Contains(t, line, "Theme: dark")

	line = headerLine("signed out", domain.StatusFilterAll, domain.SortByCreatedAt, "milk", "light")
	assert.Contains(t, line, "Search: milk")
}

func TestFormatTaskRow(t *testing.T) {
	due := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "[ ] 1    Buy milk", formatTaskRow(&domain.Task{ID: 1, Title: "Buy milk"}))
	assert.Equal(t, "[x] 2    Walk dog", formatTaskRow(&domain.Task{ID: 2, Title: "Walk dog", Completed: true}))
	assert.Equal(t, "[ ] 3    Ship (high) due 2024-06-15",
		formatTaskRow(&domain.Task{ID: 3, Title: "Ship", Priority: domain.PriorityHigh, DueDate: &due}))
}

func TestBuildFormFields(t *testing.T) {
	t.Run("blank form for a new task", func(t *testing.T) {
		fields := buildFormFields(nil)

		require.Len(t, fields, 4)
		for _, field := range fields {
			assert.Empty(t, field.Value)
		}
	})

	t.Run("prefilled from an existing task", func(t *testing.T) {
		due := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		task := &domain.Task{
			ID:          7,
			Title:       "Buy milk",
			Description: "two litres",
			Priority:    domain.PriorityHigh,
			DueDate:     &due,
		}

		fields := buildFormFields(task)

		assert.Equal(t, "Buy milk", fields[fieldTitle].Value)
		assert.Equal(t, "two litres", fields[fieldDescription].Value)
		assert.Equal(t, "high", fields[fieldPriority].Value)
		assert.Equal(t, "2024-06-15", fields[fieldDue].Value)
	})
}

func TestParseCreateForm(t *testing.T) {
	validator := validation.NewTaskValidator()

	t.Run("full form", func(t *testing.T) {
		fields := buildFormFields(nil)
		fields[fieldTitle].Value = "  Buy milk  "
		fields[fieldDescription].Value = "two litres"
		fields[fieldPriority].Value = "high"
		fields[fieldDue].Value = "2024-06-15"

		input, err := parseCreateForm(fields, validator)

		require.NoError(t, err)
		assert.Equal(t, "Buy milk", input.Title)
		assert.Equal(t, "two litres", input.Description)
		assert.Equal(t, domain.PriorityHigh, input.Priority)
		require.NotNil(t, input.DueDate)
		assert.Equal(t, "2024-06-15", input.DueDate.Format("2006-01-02"))
	})

	t.Run("title only", func(t *testing.T) {
		fields := buildFormFields(nil)
		fields[fieldTitle].Value = "Buy milk"

		input, err := parseCreateForm(fields, validator)

		require.NoError(t, err)
		assert.Equal(t, "Buy milk", input.Title)
		assert.Nil(t, input.DueDate)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		fields := buildFormFields(nil)

		_, err := parseCreateForm(fields, validator)

		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
	})

	t.Run("bad priority rejected", func(t *testing.T) {
		fields := buildFormFields(nil)
		fields[fieldTitle].Value = "Buy milk"
		fields[fieldPriority].Value = "urgent"

		_, err := parseCreateForm(fields, validator)

		require.Error(t, err)
	})

	t.Run("bad due date rejected", func(t *testing.T) {
		fields := buildFormFields(nil)
		fields[fieldTitle].Value = "Buy milk"
		fields[fieldDue].Value = "next week"

		_, err := parseCreateForm(fields, validator)

		require.Error(t, err)
	})
}

func TestParseUpdateForm(t *testing.T) {
	validator := validation.NewTaskValidator()

	fields := buildFormFields(nil)
	fields[fieldTitle].Value = "Renamed"
	fields[fieldPriority].Value = "low"

	update, err := parseUpdateForm(fields, validator)

	require.NoError(t, err)
	require.NotNil(t, update.Title)
	assert.Equal(t, "Renamed", *update.Title)
	require.NotNil(t, update.Priority)
	assert.Equal(t, domain.PriorityLow, *update.Priority)
	assert.Nil(t, update.DueDate)
	assert.Nil(t, update.Completed, "completion is toggled from the list, not the form")
}

func TestFormEditor_Edit(t *testing.T) {
	d := &Dashboard{form: &formState{fields: buildFormFields(nil)}}
	editor := &formEditor{dashboard: d}

	t.Run("nil view is ignored", func(t *testing.T) {
		assert.False(t, editor.Edit(nil, 0, 'x', 0))
		assert.Empty(t, d.form.fields[fieldTitle].Value)
	})
}
