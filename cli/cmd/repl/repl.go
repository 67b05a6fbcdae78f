package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
)

// editDoneMsg is sent when the editor produced a program to run.
type editDoneMsg struct{ prog *lang.Program }

// editCancelledMsg is sent when the editor buffer held no statements.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to fix a compile error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process fails for another reason.
type editErrorMsg struct{ err error }

const prompt = "➜ "

func helpMessage() string {
	return `
Enter javpy statements to run them in this session. Commands start with ':'.

  :help    Print this cruft
  :vars    List bindings (constants are marked)
  :reset   Discard all bindings
  :edit    Compose a multi-line program in $EDITOR
  :clear   Clear screen
  :quit    Exit REPL

Usage:
  Completions for keywords and bound names appear as you type
  Press Tab / Shift-Tab to cycle through candidates
  Keep typing to accept the current candidate, or press Esc to reject it
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatEcho formats an entered line with the prompt, styling command lines
// apart from statements.
func formatEcho(input string) string {
	if isCommand(input) {
		return promptStyle.Render(prompt) + commandStyle.Render(input)
	}

	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	logger       log.Logger
	history      *History
	historyIdx   int
	draft        string        // unsubmitted input saved when browsing history
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts an interactive session. Sources given in preload run first, in
// order, with their output written to stdout; their bindings are visible in
// the session. The history is kept in cacheDir.
func Run(
	ctx context.Context,
	cacheDir string,
	logger log.Logger,
	preload []io.Reader,
	opts ...lang.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("preload", len(preload)),
	)

	sess := newSession(logger, opts...)

	for _, r := range preload {
		prog, err := lang.CompileReader(ctx, r, sess.opts...)
		if err != nil {
			return err
		}

		out, err := sess.run(ctx, prog)
		fmt.Fprint(os.Stdout, out)

		if err != nil {
			return err
		}
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl ready",
		slog.Int("bindings", sess.env.Len()),
		slog.Int("history", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, sess, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	sess *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    sess,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil

	case editDoneMsg:
		out, err := m.session.run(m.ctxFunc(), msg.prog)

		return m, tea.Sequence(printResult(out, err)...)

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	return b.String()
}

// statusLine renders the line under the input: the history position, a
// usage hint, the completion bar, or the value of the name at the cursor.
func (m model) statusLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))

	case strings.TrimSpace(input) == "":
		return hintStyle.Render("Enter a statement, or :help for commands")

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)

	case !isCommand(input):
		word, _, _ := wordBounds(input, m.input.Position())

		return hintStyle.Render(m.session.describe(word))

	default:
		return ""
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(+1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		// Typing ends tab-cycling and keeps the candidate.
		m.tabActive = false

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, cursor movement) edits freely
	// without auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle steps through completion candidates in direction dir. A single
// candidate is completed immediately.
func (m model) cycle(dir int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + dir + n) % n
	case dir > 0:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0
	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = n - 1
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also dismisses the completion bar when exactly
// one candidate remains and the typed word already equals it.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1

	if autoConfirm && len(m.matches) == 1 &&
		m.matches[0].Str == m.input.Value()[m.wordStart:m.wordEnd] {
		m.matches = nil
	}
}

// historyMove moves through history by dir entries. Moving past the newest
// entry restores the unsubmitted draft.
func (m model) historyMove(dir int) model {
	n := m.history.Len()
	if m.historyIdx == n {
		m.draft = m.input.Value()
	}

	idx := m.historyIdx + dir
	if idx < 0 || idx > n {
		return m
	}

	m.historyIdx = idx
	m.tabActive = false

	line := m.draft
	if idx < n {
		if entry, err := m.history.Get(idx); err == nil {
			line = entry
		}
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	refreshMatches(&m, false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil
	m.draft = ""

	if _, err := m.history.Write(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatEcho(input))

	if isCommand(input) {
		return m.executeCommand(echo, strings.TrimPrefix(input, ":"))
	}

	out, err := m.session.eval(m.ctxFunc(), input)

	return m, tea.Sequence(append([]tea.Cmd{echo}, printResult(out, err)...)...)
}

// printResult prints program output, then the error if there was one.
func printResult(out string, err error) []tea.Cmd {
	var cmds []tea.Cmd

	if out = strings.TrimRight(out, "\n"); out != "" {
		cmds = append(cmds, tea.Println(resultStyle.Render(out)))
	}

	if err != nil {
		cmds = append(cmds, tea.Println(errorStyle.Render(err.Error())))
	}

	return cmds
}

func (m model) executeCommand(echo tea.Cmd, input string) (model, tea.Cmd) {
	name, _, _ := strings.Cut(strings.TrimSpace(input), " ")

	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("command", name))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echo, tea.Println(m.session.vars()))

	case "r", "reset":
		m.session.reset()

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("environment reset")))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("unknown command: "+name+" (try :help)"),
		))
	}
}

// edit suspends the UI and runs the user's editor.
func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
		opts:    m.session.opts,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.prog == nil:
			return editCancelledMsg{}
		default:
			return editDoneMsg{prog: cmd.prog}
		}
	})
}
