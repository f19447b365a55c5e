// internal/tui/review.go
//
// Interactive review screen, built with bubbletea (The Elm Architecture:
// Model -> Update -> View). The scan-rewrite engine runs in its own goroutine
// and blocks inside its decision source; each pending change crosses a
// channel into the model, and the user's keypress crosses back as the reply.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/latexmerge/latexmerge/internal/changes"
	"github.com/latexmerge/latexmerge/internal/logbook"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	commandStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Strikethrough(true)
	highlightTone = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	commentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Italic(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// request is one pending change waiting for the user's verdict.
type request struct {
	cmd   changes.Command
	args  []string
	reply chan reply
}

type reply struct {
	decision changes.Decision
	err      error
}

type result struct {
	output string
	err    error
}

type changeMsg struct{ req request }

type doneMsg struct{ res result }

// channelSource satisfies changes.Source by parking each call on the model's
// request channel until Update answers it.
type channelSource struct {
	requests chan request
}

func (s *channelSource) GetDecisionForChange(cmd changes.Command, args []string) (changes.Decision, error) {
	replies := make(chan reply)
	s.requests <- request{cmd: cmd, args: args, reply: replies}
	r := <-replies
	return r.decision, r.err
}

// Review is the bubbletea model for one merge session.
type Review struct {
	requests <-chan request
	results  <-chan result
	book     *logbook.Logbook

	current *request
	sticky  *changes.Decision
	counts  map[changes.Decision]int
	decided int
	total   int

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	aborted  bool
	finished bool
	output   string
	err      error
}

func newReview(requests <-chan request, results <-chan result, total int, book *logbook.Logbook) *Review {
	return &Review{
		requests: requests,
		results:  results,
		book:     book,
		counts:   map[changes.Decision]int{},
		total:    total,
	}
}

// Init arms the two listeners: one for the next pending change, one for the
// engine finishing.
func (r *Review) Init() tea.Cmd {
	return tea.Batch(r.waitForChange(), r.waitForResult())
}

func (r *Review) waitForChange() tea.Cmd {
	return func() tea.Msg {
		req, ok := <-r.requests
		if !ok {
			return nil
		}
		return changeMsg{req: req}
	}
}

func (r *Review) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return doneMsg{res: <-r.results}
	}
}

// Update advances the session on each message.
func (r *Review) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		vpHeight := max(4, msg.Height-14)
		if !r.ready {
			r.viewport = viewport.New(max(20, msg.Width-6), vpHeight)
			r.ready = true
			if r.current != nil {
				r.viewport.SetContent(renderChange(r.current.cmd, r.current.args))
			}
		} else {
			r.viewport.Width = max(20, msg.Width-6)
			r.viewport.Height = vpHeight
		}
		return r, nil

	case changeMsg:
		if r.aborted {
			msg.req.reply <- reply{err: changes.ErrAborted}
			return r, r.waitForChange()
		}
		if r.sticky != nil {
			r.answer(msg.req, *r.sticky)
			return r, r.waitForChange()
		}
		req := msg.req
		r.current = &req
		if r.ready {
			r.viewport.SetContent(renderChange(req.cmd, req.args))
			r.viewport.GotoTop()
		}
		return r, nil

	case doneMsg:
		r.finished = true
		r.output = msg.res.output
		r.err = msg.res.err
		return r, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			r.abort()
			return r, nil
		case "a":
			return r.decide(changes.DecisionAccept, false)
		case "r":
			return r.decide(changes.DecisionReject, false)
		case "k":
			return r.decide(changes.DecisionKeep, false)
		case "A":
			return r.decide(changes.DecisionAccept, true)
		case "R":
			return r.decide(changes.DecisionReject, true)
		case "K":
			return r.decide(changes.DecisionKeep, true)
		}
	}

	if r.ready {
		var cmd tea.Cmd
		r.viewport, cmd = r.viewport.Update(msg)
		return r, cmd
	}
	return r, nil
}

// decide answers the pending change. When sticky is set the same decision is
// replayed automatically for every remaining change.
func (r *Review) decide(d changes.Decision, sticky bool) (tea.Model, tea.Cmd) {
	if sticky {
		value := d
		r.sticky = &value
	}
	if r.current == nil {
		return r, nil
	}
	req := *r.current
	r.current = nil
	r.answer(req, d)
	return r, r.waitForChange()
}

func (r *Review) answer(req request, d changes.Decision) {
	req.reply <- reply{decision: d}
	r.counts[d]++
	r.decided++
}

// abort cancels the run. The engine sees ErrAborted from its next (or
// current) decision call and stops without touching the buffer again.
func (r *Review) abort() {
	r.aborted = true
	if r.current != nil {
		r.current.reply <- reply{err: changes.ErrAborted}
		r.current = nil
	}
}

// View renders the review screen.
func (r *Review) View() string {
	if r.finished {
		return ""
	}
	header := titleStyle.Render("LATEXMERGE · review tracked changes")

	var body string
	switch {
	case r.aborted:
		body = statusStyle.Render("Aborting...")
	case r.current == nil:
		body = statusStyle.Render("Scanning for the next change...")
	default:
		label := commandStyle.Render(fmt.Sprintf("\\%s", r.current.cmd.Name))
		preview := renderChange(r.current.cmd, r.current.args)
		if r.ready {
			preview = r.viewport.View()
		}
		body = lipgloss.JoinVertical(lipgloss.Left, label, "", preview)
	}

	progress := fmt.Sprintf(
		"change %d of ~%d · %d accepted · %d rejected · %d kept",
		r.decided+1,
		r.total,
		r.counts[changes.DecisionAccept],
		r.counts[changes.DecisionReject],
		r.counts[changes.DecisionKeep],
	)

	sections := []string{
		header,
		panelStyle.Width(max(40, r.width-4)).Render(body),
		statusStyle.Render(progress),
	}
	if logPanel := r.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, hintStyle.Render(
		"a accept · r reject · k keep    A/R/K apply to all remaining    q abort",
	))
	return strings.Join(sections, "\n")
}

func (r *Review) renderLogPanel() string {
	if r.book == nil {
		return ""
	}
	lines, total := r.book.Tail(4)
	if total == 0 {
		return ""
	}
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %d entries", total))
	body := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

// renderChange shows what accepting and rejecting would do, styled per
// command: additions green, deletions struck through, comments dimmed.
func renderChange(cmd changes.Command, args []string) string {
	switch cmd.Name {
	case "added":
		return addedStyle.Render(args[0])
	case "deleted":
		return deletedStyle.Render(args[0])
	case "replaced":
		return lipgloss.JoinVertical(lipgloss.Left,
			deletedStyle.Render(args[1]),
			addedStyle.Render(args[0]),
		)
	case "highlight":
		return highlightTone.Render(args[0])
	case "comment":
		return commentStyle.Render(args[0])
	default:
		return strings.Join(args, "\n")
	}
}

// Run processes text with an interactive review session. wrap may layer a
// policy source over the interactive one (so pre-decided commands never reach
// the screen); passing nil asks about everything.
func Run(text string, wrap func(changes.Source) changes.Source, book *logbook.Logbook) (string, error) {
	interactive := &channelSource{requests: make(chan request)}
	var src changes.Source = interactive
	if wrap != nil {
		src = wrap(interactive)
	}
	proc := changes.NewProcessor(src, changes.WithDiagnostics(book))

	results := make(chan result, 1)
	go func() {
		out, err := proc.Process(text)
		results <- result{output: out, err: err}
	}()

	model := newReview(interactive.requests, results, changes.CountOccurrences(text), book)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("tui: %w", err)
	}
	session, ok := final.(*Review)
	if !ok {
		return "", fmt.Errorf("tui: unexpected final model %T", final)
	}
	if session.err != nil {
		return "", session.err
	}
	return session.output, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
