package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogciprocate/shoutit/app"
	"github.com/cogciprocate/shoutit/domain"
	"github.com/cogciprocate/shoutit/tui/common"
	"github.com/cogciprocate/shoutit/tui/compose"
	"github.com/cogciprocate/shoutit/tui/toast"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Shout      app.ShoutService
	Editor     app.Composer // optional; ctrl+e is a no-op without it
	Logger     *slog.Logger
	Endpoint   string
	ShowErrors bool

	// CopyText writes to the system clipboard. Defaults to atotto/clipboard.
	CopyText func(string) error
}

// ShoutResultMsg carries the outcome of one submission. Text is the text that
// submission sent, so overlapping shouts never report each other's text.
type ShoutResultMsg struct {
	Seq     int
	Text    string
	Receipt domain.Receipt
	Err     error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// App is the root Bubble Tea model: the shout form plus its notifications.
type App struct {
	deps     Deps
	ctx      context.Context
	cancel   context.CancelFunc
	form     compose.Model
	toasts   toast.Model
	spinner  spinner.Model
	keys     common.KeyMap
	seq      int // Last submission number handed out
	inFlight int
	last     string // Last text that was shouted successfully
	width    int
}

// NewApp creates the root model. Cancelling ctx, or quitting, aborts every
// in-flight shout.
func NewApp(ctx context.Context, deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.CopyText == nil {
		deps.CopyText = clipboard.WriteAll
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = common.TaglineStyle

	ctx, cancel := context.WithCancel(ctx)
	return App{
		deps:    deps,
		ctx:     ctx,
		cancel:  cancel,
		form:    compose.New(),
		toasts:  toast.New(),
		spinner: s,
		keys:    common.DefaultKeyMap(),
	}
}

// Init starts the field's cursor.
func (a App) Init() tea.Cmd {
	return a.form.Init()
}

// Update handles messages and routes the rest to the form and toasts.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.form = a.form.SetWidth(msg.Width)
		a.toasts = a.toasts.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.cancel()
			return a, tea.Quit

		case key.Matches(msg, a.keys.Editor):
			return a, a.launchEditor()

		case key.Matches(msg, a.keys.Copy):
			return a.copyLast()
		}
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd

	case compose.SubmitMsg:
		return a.submit(msg.Text)

	case ShoutResultMsg:
		if a.inFlight > 0 {
			a.inFlight--
		}
		if msg.Err != nil {
			return a.onFailure(msg)
		}
		return a.onSuccess(msg)

	case spinner.TickMsg:
		if a.inFlight == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case editorFinishedMsg:
		return a.editorFinished(msg)
	}

	var formCmd, toastCmd tea.Cmd
	a.form, formCmd = a.form.Update(msg)
	a.toasts, toastCmd = a.toasts.Update(msg)
	return a, tea.Batch(formCmd, toastCmd)
}

// submit dispatches one shout. Nothing stops a new submission while others
// are still in flight.
func (a App) submit(text string) (tea.Model, tea.Cmd) {
	a.seq++
	a.inFlight++

	cmds := []tea.Cmd{a.dispatch(a.seq, text)}
	if a.inFlight == 1 {
		cmds = append(cmds, a.spinner.Tick)
	}
	return a, tea.Batch(cmds...)
}

func (a App) dispatch(seq int, text string) tea.Cmd {
	ctx, svc := a.ctx, a.deps.Shout
	return func() tea.Msg {
		r, err := svc.Shout(ctx, text)
		return ShoutResultMsg{Seq: seq, Text: text, Receipt: r, Err: err}
	}
}

// onSuccess shows the shouted notification and, when the response has a
// non-empty string form, a second one echoing it.
func (a App) onSuccess(msg ShoutResultMsg) (tea.Model, tea.Cmd) {
	a.last = msg.Text
	a.deps.Logger.Debug("shout delivered", "seq", msg.Seq, "status", msg.Receipt.StatusCode)

	var first, second tea.Cmd
	a.toasts, first = a.toasts.Push(domain.ShoutedText(msg.Text), toast.Short)
	if msg.Receipt.String() != "" {
		a.toasts, second = a.toasts.Push(domain.ResponseText(msg.Receipt), toast.Short)
	}
	return a, tea.Batch(first, second)
}

// onFailure logs the error. The user sees nothing unless ShowErrors is set.
func (a App) onFailure(msg ShoutResultMsg) (tea.Model, tea.Cmd) {
	a.deps.Logger.Error("shout failed",
		"seq", msg.Seq,
		"endpoint", a.deps.Endpoint,
		"error", msg.Err.Error(),
	)
	if !a.deps.ShowErrors {
		return a, nil
	}
	var cmd tea.Cmd
	a.toasts, cmd = a.toasts.PushError("Error: " + msg.Err.Error())
	return a, cmd
}

func (a App) copyLast() (tea.Model, tea.Cmd) {
	if a.last == "" {
		return a, nil
	}
	text := "Copied last shout."
	if err := a.deps.CopyText(a.last); err != nil {
		a.deps.Logger.Warn("clipboard write failed", "error", err)
		text = "Clipboard unavailable."
	}
	var cmd tea.Cmd
	a.toasts, cmd = a.toasts.Push(text, toast.Short)
	return a, cmd
}

// launchEditor hands the terminal to $EDITOR, prefilled with the field text.
func (a App) launchEditor() tea.Cmd {
	if a.deps.Editor == nil {
		return nil
	}
	cmd, tmpPath, err := a.deps.Editor.Cmd(a.form.Value())
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

func (a App) editorFinished(msg editorFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.deps.Logger.Warn("editor failed", "error", msg.err)
		return a, nil
	}
	content, err := a.deps.Editor.ReadContent(msg.tmpPath)
	if err != nil {
		a.deps.Logger.Warn("reading editor content", "error", err)
		return a, nil
	}
	a.form = a.form.SetValue(content)
	return a, nil
}

// InFlight is the number of shouts still waiting for an answer.
func (a App) InFlight() int {
	return a.inFlight
}

// View renders the title, the form, the current toast, and the help line.
func (a App) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("📣 ShoutIt"))
	b.WriteString(common.TaglineStyle.Render("say it to everyone"))
	b.WriteString("\n\n")
	b.WriteString(a.form.View())
	b.WriteString("\n")

	if a.inFlight > 0 {
		b.WriteString(fmt.Sprintf("%s shouting (%d)…", a.spinner.View(), a.inFlight))
	}
	b.WriteString("\n")

	if t := a.toasts.View(); t != "" {
		b.WriteString(t)
	}
	b.WriteString("\n")

	b.WriteString(common.StatusBarStyle.Render(common.Truncate(a.keys.HelpLine(), a.width)))
	return b.String()
}
