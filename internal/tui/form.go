package tui

import (
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"taskdash/internal/domain"
	"taskdash/internal/validation"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldDue
)

type formField struct {
	Label string
	Value string
}

// formState holds the in-progress add or edit form. A zero taskID means
// a new task.
type formState struct {
	taskID int64
	fields []formField
	index  int
}

// buildFormFields prefills the form from an existing task, or leaves it
// blank for a new one.
func buildFormFields(task *domain.Task) []formField {
	fields := []formField{
		{Label: "Title"},
		{Label: "Description"},
		{Label: "Priority"},
		{Label: "Due (YYYY-MM-DD)"},
	}
	if task == nil {
		return fields
	}

	fields[fieldTitle].Value = task.Title
	fields[fieldDescription].Value = task.Description
	fields[fieldPriority].Value = string(task.Priority)
	if task.DueDate != nil {
		fields[fieldDue].Value = task.DueDate.Format(validation.DueDateFormat)
	}
	return fields
}

// parseCreateForm converts the form fields into a creation request.
func parseCreateForm(fields []formField, validator *validation.TaskValidator) (domain.TaskCreate, error) {
	title, err := validator.GetValidTitle(fields[fieldTitle].Value)
	if err != nil {
		return domain.TaskCreate{}, err
	}

	input := domain.TaskCreate{
		Title:       title,
		Description: strings.TrimSpace(fields[fieldDescription].Value),
		Priority:    domain.Priority(strings.TrimSpace(fields[fieldPriority].Value)),
	}
	if err := validator.ValidatePriority(input.Priority); err != nil {
		return domain.TaskCreate{}, err
	}

	if due := strings.TrimSpace(fields[fieldDue].Value); due != "" {
		parsed, ok := validation.NewValidator().ParseDueDate(due)
		if !ok {
			validationError := validation.NewValidationError()
			validationError.AddInvalidFormatError("due_date", due, validation.DueDateFormat)
			return domain.TaskCreate{}, validationError
		}
		input.DueDate = &parsed
	}

	return input, nil
}

// parseUpdateForm converts the form fields into a full update of the
// editable fields.
func parseUpdateForm(fields []formField, validator *validation.TaskValidator) (domain.TaskUpdate, error) {
	create, err := parseCreateForm(fields, validator)
	if err != nil {
		return domain.TaskUpdate{}, err
	}

	update := domain.TaskUpdate{
		Title:       &create.Title,
		Description: &create.Description,
		Priority:    &create.Priority,
	}
	if create.DueDate != nil {
		update.DueDate = create.DueDate
	}
	return update, nil
}

func (d *Dashboard) addTask(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	d.form = &formState{fields: buildFormFields(nil)}
	return nil
}

func (d *Dashboard) editTask(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	selected := d.selectedTask()
	if selected == nil {
		return nil
	}
	d.form = &formState{taskID: selected.ID, fields: buildFormFields(selected)}
	return nil
}

func (d *Dashboard) showForm(gui *gocui.Gui) error {
	if d.form == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := maxX / 2
	if width < 50 {
		width = 50
	}
	height := len(d.form.fields) + 1
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if d.form.taskID != 0 {
		view.Title = "Edit Task"
	} else {
		view.Title = "New Task"
	}
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = d.formEditor
	d.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (d *Dashboard) renderForm(view *gocui.View) {
	if d.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range d.form.fields {
		prefix := "  "
		if index == d.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	field := d.form.fields[d.form.index]
	cursorX := len([]rune(field.Label)) + len([]rune(field.Value)) + 4
	view.SetCursor(cursorX, d.form.index)
}

func (d *Dashboard) submitForm(gui *gocui.Gui, view *gocui.View) error {
	if d.form == nil {
		return nil
	}

	validator := validation.NewTaskValidatorWith(validation.NewValidatorWithConfig(d.config))

	if d.form.taskID == 0 {
		input, err := parseCreateForm(d.form.fields, validator)
		if err != nil {
			d.status = userMessage(err)
			return nil
		}
		if _, err := d.engine.Create(d.ctx, input); err != nil {
			d.setStatus(err)
			return nil
		}
	} else {
		update, err := parseUpdateForm(d.form.fields, validator)
		if err != nil {
			d.status = userMessage(err)
			return nil
		}
		if _, err := d.engine.Update(d.ctx, d.form.taskID, update); err != nil {
			d.setStatus(err)
			return nil
		}
	}

	d.form = nil
	d.status = ""
	_ = gui.DeleteView(viewForm)
	return nil
}

func (d *Dashboard) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	d.form = nil
	_ = gui.DeleteView(viewForm)
	return nil
}

func (d *Dashboard) nextFormField(gui *gocui.Gui, view *gocui.View) error {
	if d.form == nil {
		return nil
	}
	if d.form.index < len(d.form.fields)-1 {
		d.form.index++
	}
	d.renderForm(view)
	return nil
}

func (d *Dashboard) prevFormField(gui *gocui.Gui, view *gocui.View) error {
	if d.form == nil {
		return nil
	}
	if d.form.index > 0 {
		d.form.index--
	}
	d.renderForm(view)
	return nil
}

// userMessage renders validation failures the same way the footer shows
// backend errors.
func userMessage(err error) string {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage()
	}
	return err.Error()
}

// formEditor routes typed characters into the focused form field.
type formEditor struct {
	dashboard *Dashboard
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	d := e.dashboard
	if d == nil || d.form == nil || view == nil {
		return false
	}
	field := &d.form.fields[d.form.index]

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	d.renderForm(view)
	return true
}
