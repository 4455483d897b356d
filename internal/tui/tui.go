package tui

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"go.uber.org/zap"

	"taskdash/internal/config"
	"taskdash/internal/domain"
	"taskdash/internal/errors"
	"taskdash/internal/session"
	"taskdash/internal/taskview"
)

const (
	viewHeader = "header"
	viewTasks  = "tasks"
	viewFooter = "footer"
	viewSearch = "search"
	viewForm   = "form"
)

// Dashboard is the interactive full-screen client. All task state lives
// in the engine; the dashboard renders the projection and translates
// key presses into engine operations.
type Dashboard struct {
	gui     *gocui.Gui
	engine  *taskview.Engine
	session *session.Store
	config  *config.Config
	logger  *zap.Logger

	ctx context.Context

	selected     int
	searchActive bool
	form         *formState
	formEditor   *formEditor
	status       string
	theme        string
}

// New creates a dashboard over an already refreshed engine.
func New(engine *taskview.Engine, store *session.Store, cfg *config.Config, logger *zap.Logger) (*Dashboard, error) {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeValidation, "initialize terminal UI")
	}

	d := &Dashboard{
		gui:     gui,
		engine:  engine,
		session: store,
		config:  cfg,
		logger:  logger,
	}
	d.formEditor = &formEditor{dashboard: d}
	return d, nil
}

// Close releases the terminal.
func (d *Dashboard) Close() {
	if d.gui != nil {
		d.gui.Close()
	}
}

// Run enters the main loop until the user quits.
func (d *Dashboard) Run(ctx context.Context) error {
	d.ctx = ctx
	d.theme = d.session.Theme(ctx)

	d.gui.SetManagerFunc(d.layout)
	if err := d.bindKeys(d.gui); err != nil {
		return err
	}

	if err := d.gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (d *Dashboard) bindKeys(gui *gocui.Gui) error {
	global := []struct {
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, d.quit},
		{'q', d.quit},
		{'r', d.refresh},
		{'f', d.cycleFilter},
		{'s', d.toggleSort},
		{'t', d.toggleTheme},
		{'/', d.startSearch},
		{'a', d.addTask},
		{'e', d.editTask},
		{'d', d.deleteTask},
		{gocui.KeySpace, d.toggleTask},
	}
	for _, binding := range global {
		if err := gui.SetKeybinding("", binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}

	list := []struct {
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyArrowDown, d.moveDown},
		{'j', d.moveDown},
		{gocui.KeyArrowUp, d.moveUp},
		{'k', d.moveUp},
	}
	for _, binding := range list {
		if err := gui.SetKeybinding(viewTasks, binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}

	if err := gui.SetKeybinding(viewSearch, gocui.KeyEnter, gocui.ModNone, d.submitSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewSearch, gocui.KeyEsc, gocui.ModNone, d.cancelSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyEnter, gocui.ModNone, d.submitForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyTab, gocui.ModNone, d.nextFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyBacktab, gocui.ModNone, d.prevFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyEsc, gocui.ModNone, d.cancelForm); err != nil {
		return err
	}
	return nil
}

func (d *Dashboard) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = false
	d.renderHeader(headerView)

	footerY0 := maxY - 3
	if footerY0 < 2 {
		footerY0 = 2
	}
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, maxY-1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	d.renderFooter(footerView)

	tasksView, err := gui.SetView(viewTasks, 0, 2, maxX-1, footerY0-1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		tasksView.Title = "Tasks"
	}
	tasksView.Frame = true
	tasksView.Highlight = !d.inputActive()
	tasksView.SelBgColor = gocui.ColorBlue
	tasksView.SelFgColor = gocui.ColorBlack
	if d.theme == "dark" {
		tasksView.FrameColor = gocui.ColorCyan
	} else {
		tasksView.FrameColor = gocui.ColorDefault
	}
	d.renderTasks(tasksView)

	if d.searchActive {
		if err := d.showSearch(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewSearch)
	}

	if d.form != nil {
		if err := d.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if !d.inputActive() {
		_, _ = gui.SetCurrentView(viewTasks)
	}
	gui.Cursor = d.inputActive()

	return nil
}

func (d *Dashboard) renderHeader(view *gocui.View) {
	view.Clear()

	who := "signed out"
	if user, ok := d.session.CurrentUser(d.ctx); ok {
		who = fmt.Sprintf("%s <%s>", user.DisplayName(), user.Email)
	}
	fmt.Fprint(view, headerLine(who, d.engine.StatusFilter(), d.engine.SortKey(), d.engine.SearchTerm(), d.theme))
}

func (d *Dashboard) renderFooter(view *gocui.View) {
	view.Clear()
	fmt.Fprintln(view, "a add | e edit | d delete | space toggle | f filter | s sort | / search | r refresh | t theme | q quit")
	if d.status != "" {
		fmt.Fprint(view, d.status)
	}
}

func (d *Dashboard) renderTasks(view *gocui.View) {
	view.Clear()
	projection := d.engine.Projection()
	d.selected = clampSelection(d.selected, len(projection))

	if len(projection) == 0 {
		fmt.Fprint(view, " No tasks to show")
		return
	}

	for i, task := range projection {
		prefix := " "
		if i == d.selected {
			prefix = ">"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatTaskRow(task))
	}
	view.SetCursor(0, d.selected)
}

// selectedTask returns the task under the cursor in projection order.
func (d *Dashboard) selectedTask() *domain.Task {
	projection := d.engine.Projection()
	if d.selected >= 0 && d.selected < len(projection) {
		return projection[d.selected]
	}
	return nil
}

func (d *Dashboard) moveDown(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	if d.selected < len(d.engine.Projection())-1 {
		d.selected++
	}
	return nil
}

func (d *Dashboard) moveUp(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	if d.selected > 0 {
		d.selected--
	}
	return nil
}

func (d *Dashboard) refresh(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	if err := d.engine.Refresh(d.ctx); err != nil {
		d.setStatus(err)
		return nil
	}
	d.status = ""
	return nil
}

func (d *Dashboard) cycleFilter(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	next := nextStatusFilter(d.engine.StatusFilter())
	if err := d.engine.SetStatusFilter(d.ctx, next); err != nil {
		d.setStatus(err)
		return nil
	}
	// Remember the choice for the next session; failures only lose the
	// preference, not the view.
	if err := d.session.SetDefaultStatusFilter(d.ctx, next); err != nil {
		d.logger.Debug("persist status filter", zap.Error(err))
	}
	d.status = ""
	return nil
}

func (d *Dashboard) toggleSort(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	next := nextSortKey(d.engine.SortKey())
	if err := d.engine.SetSortKey(d.ctx, next); err != nil {
		d.setStatus(err)
		return nil
	}
	if err := d.session.SetDefaultSortKey(d.ctx, next); err != nil {
		d.logger.Debug("persist sort key", zap.Error(err))
	}
	d.status = ""
	return nil
}

func (d *Dashboard) toggleTheme(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	d.theme = nextTheme(d.theme)
	if err := d.session.SetTheme(d.ctx, d.theme); err != nil {
		d.logger.Debug("persist theme", zap.Error(err))
	}
	return nil
}

func (d *Dashboard) toggleTask(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	selected := d.selectedTask()
	if selected == nil {
		return nil
	}
	if _, err := d.engine.Toggle(d.ctx, selected.ID); err != nil {
		d.setStatus(err)
		return nil
	}
	d.status = ""
	return nil
}

func (d *Dashboard) deleteTask(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	selected := d.selectedTask()
	if selected == nil {
		return nil
	}
	if err := d.engine.Remove(d.ctx, selected.ID); err != nil {
		d.setStatus(err)
		return nil
	}
	d.status = ""
	return nil
}

func (d *Dashboard) startSearch(gui *gocui.Gui, _ *gocui.View) error {
	if d.inputActive() {
		return nil
	}
	d.searchActive = true
	return nil
}

func (d *Dashboard) showSearch(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := maxX / 2
	if width < 30 {
		width = 30
	}
	x0 := (maxX - width) / 2
	y0 := (maxY - 3) / 2

	view, err := gui.SetView(viewSearch, x0, y0, x0+width, y0+2, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Search"
		view.Clear()
		fmt.Fprint(view, d.engine.SearchTerm())
	}
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	_, _ = gui.SetCurrentView(viewSearch)
	return nil
}

func (d *Dashboard) submitSearch(gui *gocui.Gui, view *gocui.View) error {
	d.engine.SetSearchTerm(strings.TrimSpace(view.Buffer()))
	d.searchActive = false
	d.status = ""
	_ = gui.DeleteView(viewSearch)
	return nil
}

func (d *Dashboard) cancelSearch(gui *gocui.Gui, _ *gocui.View) error {
	d.searchActive = false
	_ = gui.DeleteView(viewSearch)
	return nil
}

func (d *Dashboard) inputActive() bool {
	return d.searchActive || d.form != nil
}

// setStatus shows a transient user-facing message in the footer.
func (d *Dashboard) setStatus(err error) {
	d.status = errors.GetUserMessage(err)
	if errors.ShouldLogError(err) {
		d.logger.Warn("dashboard operation failed", zap.Error(err))
	}
}

func (d *Dashboard) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

// headerLine renders the session and view-state summary shown at the top.
func headerLine(who string, filter domain.StatusFilter, key domain.SortKey, term, theme string) string {
	search := term
	if search == "" {
		search = "type / to search"
	}
	return fmt.Sprintf("%s | Filter: %s | Sort: %s | Search: %s | Theme: %s", who, filter, key, search, theme)
}

// formatTaskRow renders one projection entry for the task list.
func formatTaskRow(task *domain.Task) string {
	var b strings.Builder

	if task.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	fmt.Fprintf(&b, "%-4d %s", task.ID, task.Title)

	if task.Priority != "" {
		fmt.Fprintf(&b, " (%s)", task.Priority)
	}
	if task.DueDate != nil {
		fmt.Fprintf(&b, " due %s", task.DueDate.Format("2006-01-02"))
	}
	return b.String()
}

// nextStatusFilter cycles all -> pending -> completed -> all.
func nextStatusFilter(current domain.StatusFilter) domain.StatusFilter {
	switch current {
	case domain.StatusFilterAll:
		return domain.StatusFilterPending
	case domain.StatusFilterPending:
		return domain.StatusFilterCompleted
	default:
		return domain.StatusFilterAll
	}
}

// nextSortKey flips between the two sort orders.
func nextSortKey(current domain.SortKey) domain.SortKey {
	if current == domain.SortByCreatedAt {
		return domain.SortByTitle
	}
	return domain.SortByCreatedAt
}

// nextTheme flips between light and dark.
func nextTheme(current string) string {
	if current == "dark" {
		return "light"
	}
	return "dark"
}

// clampSelection keeps the cursor inside the projection after it shrinks.
func clampSelection(selected, length int) int {
	if length == 0 {
		return 0
	}
	if selected >= length {
		return length - 1
	}
	if selected < 0 {
		return 0
	}
	return selected
}
