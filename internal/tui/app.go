// Package tui is a terminal form for a single local generation session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dockergen/internal/session"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldURL field = iota
	fieldDescription
	fieldFeedback
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	artifactStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusStyles  = map[statusKind]lipgloss.Style{
		statusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")),
		statusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		statusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")),
		statusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
)

// actionDoneMsg carries the outcome of one backend call.
type actionDoneMsg struct {
	action    string
	detection string
	artifact  string
	err       error
}

type savedMsg struct {
	path string
	err  error
}

// App is the bubbletea model. Backend calls run as commands; busy is set
// while one is in flight and further actions are refused until it returns.
type App struct {
	sess   *session.Session
	outDir string
	ctx    context.Context

	mode     session.Mode
	url      textinput.Model
	desc     textarea.Model
	feedback textarea.Model
	focus    field

	busy     bool
	status   string
	kind     statusKind
	artifact string

	width int
}

// NewApp builds the form around sess. Saved Dockerfiles go to outDir.
func NewApp(ctx context.Context, sess *session.Session, outDir string) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	url := textinput.New()
	url.Placeholder = "https://github.com/owner/repo"
	url.CharLimit = 512
	url.Width = 60

	desc := textarea.New()
	desc.Placeholder = "Describe the project or analyze a repository"
	desc.SetHeight(4)
	desc.ShowLineNumbers = false

	fb := textarea.New()
	fb.Placeholder = "Feedback for refinement"
	fb.SetHeight(3)
	fb.ShowLineNumbers = false

	a := &App{
		sess:     sess,
		outDir:   outDir,
		ctx:      ctx,
		mode:     session.ModeRepository,
		url:      url,
		desc:     desc,
		feedback: fb,
		status:   "ctrl+a analyze · ctrl+g generate · ctrl+r refine · ctrl+s save",
	}
	a.setFocus(fieldURL)
	return a
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.desc.SetWidth(max(20, msg.Width-4))
		a.feedback.SetWidth(max(20, msg.Width-4))
		return a, nil
	case actionDoneMsg:
		return a.handleActionDone(msg), nil
	case savedMsg:
		if msg.err != nil {
			a.setStatus(statusError, "Error saving Dockerfile: "+msg.err.Error())
		} else {
			a.setStatus(statusSuccess, "Saved "+msg.path)
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a.updateFocused(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab":
		a.setFocus(a.nextField())
		return a, nil
	case "ctrl+t":
		a.toggleMode()
		return a, nil
	case "ctrl+a":
		return a, a.startAnalyze()
	case "ctrl+g":
		return a, a.startGenerate()
	case "ctrl+r":
		return a, a.startRefine()
	case "ctrl+s":
		return a, a.save()
	}
	return a.updateFocused(msg)
}

func (a *App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focus {
	case fieldURL:
		a.url, cmd = a.url.Update(msg)
	case fieldDescription:
		a.desc, cmd = a.desc.Update(msg)
	case fieldFeedback:
		a.feedback, cmd = a.feedback.Update(msg)
	}
	return a, cmd
}

func (a *App) nextField() field {
	next := (a.focus + 1) % 3
	if next == fieldURL && a.mode == session.ModeManual {
		next = fieldDescription
	}
	return next
}

func (a *App) setFocus(f field) {
	a.focus = f
	a.url.Blur()
	a.desc.Blur()
	a.feedback.Blur()
	switch f {
	case fieldURL:
		a.url.Focus()
	case fieldDescription:
		a.desc.Focus()
	case fieldFeedback:
		a.feedback.Focus()
	}
}

func (a *App) toggleMode() {
	if a.mode == session.ModeRepository {
		a.mode = session.ModeManual
		if a.focus == fieldURL {
			a.setFocus(fieldDescription)
		}
	} else {
		a.mode = session.ModeRepository
	}
	a.sess.SetMode(a.mode)
}

func (a *App) refuseIfBusy() bool {
	if a.busy {
		a.setStatus(statusWarning, "Still working on the previous request...")
		return true
	}
	return false
}

func (a *App) startAnalyze() tea.Cmd {
	if a.refuseIfBusy() {
		return nil
	}
	if a.mode != session.ModeRepository {
		a.setStatus(statusWarning, "Switch to repository mode (ctrl+t) to analyze a URL.")
		return nil
	}
	url := strings.TrimSpace(a.url.Value())
	if url == "" {
		a.setStatus(statusWarning, "Enter a repository URL first.")
		return nil
	}
	a.busy = true
	a.setStatus(statusInfo, "Analyzing repository...")
	sess, ctx := a.sess, a.ctx
	return func() tea.Msg {
		desc, err := sess.Analyze(ctx, url)
		return actionDoneMsg{action: "analyze", detection: desc, err: err}
	}
}

func (a *App) startGenerate() tea.Cmd {
	if a.refuseIfBusy() {
		return nil
	}
	a.sess.Describe(a.desc.Value())
	a.sess.SetMode(a.mode)
	a.busy = true
	a.setStatus(statusInfo, "Generating Dockerfile...")
	sess, ctx := a.sess, a.ctx
	return func() tea.Msg {
		out, err := sess.Generate(ctx)
		return actionDoneMsg{action: "generate", artifact: out, err: err}
	}
}

func (a *App) startRefine() tea.Cmd {
	if a.refuseIfBusy() {
		return nil
	}
	if a.artifact == "" {
		a.setStatus(statusWarning, "Generate a Dockerfile first before refining.")
		return nil
	}
	feedback := a.feedback.Value()
	if strings.TrimSpace(feedback) == "" {
		a.setStatus(statusWarning, "Please provide feedback before refining.")
		return nil
	}
	a.busy = true
	a.setStatus(statusInfo, "Refining Dockerfile...")
	sess, ctx := a.sess, a.ctx
	return func() tea.Msg {
		out, err := sess.Refine(ctx, feedback)
		return actionDoneMsg{action: "refine", artifact: out, err: err}
	}
}

func (a *App) handleActionDone(msg actionDoneMsg) *App {
	a.busy = false
	if msg.err != nil {
		var pe *session.PreconditionError
		if errors.As(msg.err, &pe) {
			a.setStatus(statusWarning, describePrecondition(pe))
		} else {
			a.setStatus(statusError, fmt.Sprintf("Error during %s: %v", msg.action, msg.err))
		}
		return a
	}
	switch msg.action {
	case "analyze":
		a.desc.SetValue(msg.detection)
		a.setStatus(statusSuccess, "Repository analyzed.")
	case "generate":
		a.artifact = msg.artifact
		a.setStatus(statusSuccess, "Dockerfile generated successfully!")
	case "refine":
		a.artifact = msg.artifact
		a.feedback.Reset()
		a.setStatus(statusSuccess, "Dockerfile refined successfully!")
	}
	return a
}

func describePrecondition(pe *session.PreconditionError) string {
	switch {
	case errors.Is(pe, session.ErrNoDescription):
		return "Enter a project description first."
	case errors.Is(pe, session.ErrNoArtifact):
		return "Generate a Dockerfile first before refining."
	case errors.Is(pe, session.ErrEmptyFeedback):
		return "Please provide feedback before refining."
	}
	return pe.Error()
}

func (a *App) save() tea.Cmd {
	dl, err := a.sess.Download()
	if err != nil {
		a.setStatus(statusWarning, "Nothing to save yet.")
		return nil
	}
	dir := a.outDir
	return func() tea.Msg {
		path := filepath.Join(dir, dl.Filename)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return savedMsg{path: path, err: err}
		}
		return savedMsg{path: path, err: os.WriteFile(path, []byte(dl.Body), 0o644)}
	}
}

func (a *App) setStatus(kind statusKind, text string) {
	a.kind = kind
	a.status = text
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dockerfile Generator"))
	b.WriteString("\n\n")

	modeLabel := "repository URL"
	if a.mode == session.ModeManual {
		modeLabel = "manual description"
	}
	b.WriteString(labelStyle.Render("Mode: ") + modeLabel + hintStyle.Render("  (ctrl+t to switch)"))
	b.WriteString("\n\n")

	if a.mode == session.ModeRepository {
		b.WriteString(a.label("Repository URL", fieldURL))
		b.WriteString(a.url.View())
		b.WriteString("\n\n")
	}
	b.WriteString(a.label("Project description", fieldDescription))
	b.WriteString(a.desc.View())
	b.WriteString("\n\n")

	if a.artifact != "" {
		b.WriteString(labelStyle.Render("Dockerfile"))
		b.WriteString("\n")
		b.WriteString(artifactStyle.Render(a.artifact))
		b.WriteString("\n\n")
	}

	b.WriteString(a.label("Feedback", fieldFeedback))
	b.WriteString(a.feedback.View())
	b.WriteString("\n\n")

	status := a.status
	if a.busy {
		status = "⏳ " + status
	}
	b.WriteString(statusStyles[a.kind].Render(status))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab next field · ctrl+c quit"))
	return b.String()
}

func (a *App) label(text string, f field) string {
	if a.focus == f {
		return focusedStyle.Render("> "+text) + "\n"
	}
	return labelStyle.Render("  "+text) + "\n"
}
