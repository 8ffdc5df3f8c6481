package drill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/mathsheet/internal/generator"
	"github.com/verte-zerg/mathsheet/internal/model"
	"github.com/verte-zerg/mathsheet/internal/stats"
	"github.com/verte-zerg/mathsheet/internal/store"
)

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	counterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea drill UI.
type Model struct {
	opts   Options
	store  *store.Store
	gen    *generator.Generator
	logger *zap.Logger
	now    func() time.Time

	width  int
	height int

	input textinput.Model
	items []Item
	index int

	started   bool
	startedAt time.Time
	endedAt   time.Time
	correct   int
	incorrect int
	feedback  string
	finished  bool
	err       error
}

// NewModel constructs a drill model. st may be nil to skip history.
func NewModel(opts Options, st *store.Store, gen *generator.Generator, logger *zap.Logger) (*Model, error) {
	ti := textinput.New()
	ti.Placeholder = "answer"
	ti.Prompt = "> "
	ti.CharLimit = 32
	ti.Width = 24
	ti.Focus()
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		opts:   opts,
		store:  st,
		gen:    gen,
		logger: logger,
		now:    time.Now,
		input:  ti,
	}
	if err := m.resetSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.finishSession()
			return m, tea.Quit
		case tea.KeyEnter:
			if m.finished {
				if err := m.resetSession(); err != nil {
					m.err = err
					return m, tea.Quit
				}
				return m, nil
			}
			m.submit(m.input.Value())
			return m, nil
		}
		if m.finished {
			if msg.Type == tea.KeyRunes && string(msg.Runes) == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.finished {
		body = m.renderSummary()
	} else {
		body = m.renderQuestion()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	footer := footerStyle.Render(m.renderFooter())
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

// Err returns the error that stopped the drill, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) submit(value string) {
	if len(m.items) == 0 || m.index >= len(m.items) {
		return
	}
	if strings.TrimSpace(value) == "" {
		return
	}
	if !m.started {
		m.started = true
		m.startedAt = m.now()
	}
	item := m.items[m.index]
	if item.Check(value) {
		m.correct++
		m.feedback = correctStyle.Render("Correct!")
	} else {
		m.incorrect++
		m.feedback = incorrectStyle.Render(fmt.Sprintf("%s %s", item.Prompt, item.Answer))
	}
	m.index++
	m.input.Reset()
	if m.index >= len(m.items) {
		m.finishSession()
		m.finished = true
	}
}

func (m *Model) renderQuestion() string {
	if len(m.items) == 0 {
		return ""
	}
	counter := counterStyle.Render(fmt.Sprintf("Problem %d of %d", m.index+1, len(m.items)))
	lines := []string{
		counter,
		"",
		promptStyle.Render(m.items[m.index].Prompt),
		m.input.View(),
		"",
		m.feedback,
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	perMin, acc := stats.DrillMetrics(m.correct, m.incorrect, m.elapsed().Milliseconds())
	lines := []string{
		promptStyle.Render("Drill complete"),
		"",
		m.feedback,
		fmt.Sprintf("Score %d / %d · %.1f%%", m.correct, m.correct+m.incorrect, acc*100),
		fmt.Sprintf("%.1f problems/min", perMin),
		"",
		footerStyle.Render("enter: new drill · q: quit"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	total := len(m.items)
	if total == 0 {
		return ""
	}
	answered := m.correct + m.incorrect
	segments := []string{
		fmt.Sprintf("Progress %d%%", answered*100/total),
		fmt.Sprintf("Correct %d", m.correct),
		fmt.Sprintf("Missed %d", m.incorrect),
	}
	return strings.Join(segments, "  ")
}

func (m *Model) elapsed() time.Duration {
	if !m.started {
		return 0
	}
	if !m.endedAt.IsZero() {
		return m.endedAt.Sub(m.startedAt)
	}
	return m.now().Sub(m.startedAt)
}

func (m *Model) resetSession() error {
	items, err := BuildItems(m.gen, m.opts)
	if err != nil {
		return err
	}
	m.items = items
	m.index = 0
	m.started = false
	m.startedAt = time.Time{}
	m.endedAt = time.Time{}
	m.correct = 0
	m.incorrect = 0
	m.feedback = ""
	m.finished = false
	m.input.Reset()
	return nil
}

// finishSession records the drill once; unanswered problems are not counted.
func (m *Model) finishSession() {
	if !m.started || m.finished || !m.endedAt.IsZero() {
		return
	}
	endedAt := m.now()
	m.endedAt = endedAt
	session := model.DrillSession{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Kind:       m.opts.Kind,
		Variant:    m.opts.Variant(),
		Correct:    m.correct,
		Incorrect:  m.incorrect,
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	}
	if m.store == nil {
		return
	}
	if _, err := m.store.InsertDrillSession(context.Background(), session); err != nil {
		m.logger.Warn("failed to save drill", zap.Error(err))
	}
}
