package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/assistant"
	"github.com/alexanderramin/bizpulse/internal/cli/formatter"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Answer source recorded for replies that are failure messages.
const sourceFailure = "failure"

// Lines below the transcript: separator, prompt and key hints.
const chatChromeLines = 3

// answerMsg carries a finished exchange back into the model.
type answerMsg struct {
	question string
	answer   *assistant.Answer
	err      error
	conv     *domain.Conversation
	saveErr  error
}

// chatModel is the interactive chat. Each question is answered and saved
// inside one tea.Cmd.
type chatModel struct {
	ctx   context.Context
	app   *App
	input textinput.Model
	vp    viewport.Model

	width  int
	height int

	conv   *domain.Conversation
	turns  []domain.Turn
	blocks []string
	busy   bool

	picker *huh.Form
	picked string

	initial  string
	quitting bool
}

func newChatModel(ctx context.Context, app *App, opts chatOptions) (*chatModel, error) {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask about revenue, billing, pipeline or sectors"
	ti.CharLimit = 500

	vp := viewport.New(0, 0)
	vp.KeyMap = chatViewportKeyMap()

	m := &chatModel{
		ctx:     ctx,
		app:     app,
		input:   ti,
		vp:      vp,
		initial: opts.initial,
		blocks:  []string{formatter.FormatChatWelcome(app.Assistant.UsesLLM())},
	}
	if err := m.resume(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// resume loads a saved conversation when asked to. A missing latest
// conversation simply starts a new one.
func (m *chatModel) resume(opts chatOptions) error {
	if m.app.History == nil || (!opts.resume && opts.id == "") {
		return nil
	}

	var conv *domain.Conversation
	var err error
	if opts.id != "" {
		conv, err = resolveConversation(m.ctx, m.app.History, opts.id)
	} else {
		conv, err = m.app.History.Latest(m.ctx)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
	}
	if err != nil {
		return err
	}

	turns, err := m.app.History.ListTurns(m.ctx, conv.ID)
	if err != nil {
		return err
	}
	m.conv = conv
	m.turns = turns
	m.blocks = append(m.blocks, formatter.Dim(fmt.Sprintf("Resumed conversation %s (%d turns)", conv.DisplayID(), len(turns))))
	for _, t := range turns {
		m.blocks = append(m.blocks, formatter.FormatTurn(t))
	}
	return nil
}

// ── tea.Model ────────────────────────────────────────────────────────────────

func (m *chatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initial != "" {
		q := m.initial
		m.initial = ""
		cmds = append(cmds, m.ask(q, false))
	}
	return tea.Batch(cmds...)
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(ws.Width, ws.Height)
		if m.picker == nil {
			return m, nil
		}
	}
	if m.picker != nil {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case answerMsg:
		m.finish(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			if strings.HasPrefix(text, "/") {
				return m.command(text)
			}
			return m, m.ask(text, false)
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch {
	case m.picker != nil:
		b.WriteString(m.picker.View())
		b.WriteString("\n")
	case m.height > 0:
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	default:
		b.WriteString(m.content())
		b.WriteString("\n")
	}

	b.WriteString(formatter.Dim(strings.Repeat("─", max(m.width, 20))))
	b.WriteString("\n")
	b.WriteString(formatter.StylePurple.Render("ask") + formatter.Dim("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	hints := make([]string, 0, 3)
	for _, kb := range m.shortHelp() {
		hints = append(hints, formatter.Dim(kb.Help().Key+": "+kb.Help().Desc))
	}
	b.WriteString(strings.Join(hints, "  "))
	return b.String()
}

func (m *chatModel) shortHelp() []key.Binding {
	if m.picker != nil {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m *chatModel) command(text string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.Fields(text)[0]) {
	case "/quit", "/exit", "/q":
		m.quitting = true
		return m, tea.Quit
	case "/help":
		m.appendBlock(formatter.FormatChatHelp())
	case "/clear":
		m.conv = nil
		m.turns = nil
		m.blocks = []string{formatter.FormatChatWelcome(m.app.Assistant.UsesLLM())}
		m.syncViewport()
	case "/refresh":
		m.app.Assistant.Refresh()
		m.appendBlock(formatter.Dim("Board data cleared; the next question refetches both boards."))
	case "/report":
		return m, m.ask(assistant.LeadershipQuestion, true)
	case "/examples":
		m.picked = ""
		m.picker = newExamplePicker(&m.picked)
		if m.width > 0 {
			m.picker = m.picker.WithWidth(m.width).WithHeight(max(m.height-chatChromeLines, 1))
		}
		return m, m.picker.Init()
	default:
		m.appendBlock(formatter.Dim(fmt.Sprintf("Unknown command %s. Type /help for the list.", text)))
	}
	return m, nil
}

func (m *chatModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc:
			m.picker = nil
			m.appendBlock(formatter.Dim("Cancelled."))
			return m, nil
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}

	form, cmd := m.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.picker = f
	}
	switch m.picker.State {
	case huh.StateCompleted:
		m.picker = nil
		if m.picked == "" {
			return m, nil
		}
		return m, m.ask(m.picked, false)
	case huh.StateAborted:
		m.picker = nil
		return m, nil
	}
	return m, cmd
}

// ── answering ────────────────────────────────────────────────────────────────

// ask shows the question and returns the command that answers and saves
// it. The prior turns are captured now, before the question joins them.
func (m *chatModel) ask(question string, leadership bool) tea.Cmd {
	m.busy = true
	m.appendBlock(formatter.FormatTurn(domain.Turn{Role: domain.RoleUser, Content: question}))

	ctx, app, conv := m.ctx, m.app, m.conv
	history := append([]domain.Turn(nil), m.turns...)
	return func() tea.Msg {
		var ans *assistant.Answer
		var err error
		if leadership {
			ans, err = app.Assistant.Report(ctx)
		} else {
			ans, err = app.Assistant.Answer(ctx, question, history)
		}

		reply, source := assistant.FailureMessage(err), sourceFailure
		if err == nil {
			reply, source = ans.Text, ans.Source
		}
		msg := answerMsg{question: question, answer: ans, err: err}
		msg.conv, msg.saveErr = saveExchange(ctx, app.History, conv, question, reply, source)
		return msg
	}
}

func (m *chatModel) finish(msg answerMsg) {
	m.busy = false
	m.conv = msg.conv

	reply := assistant.FailureMessage(msg.err)
	source := sourceFailure
	if msg.err == nil {
		reply, source = msg.answer.Text, msg.answer.Source
		m.appendBlock(formatter.FormatAnswer(msg.answer))
	} else {
		m.appendBlock(formatter.FormatFailure(reply))
	}
	m.turns = append(m.turns,
		domain.Turn{Role: domain.RoleUser, Content: msg.question},
		domain.Turn{Role: domain.RoleAssistant, Content: reply, Source: source},
	)
	if msg.saveErr != nil {
		m.appendBlock(formatter.Dim("(transcript not saved: " + msg.saveErr.Error() + ")"))
	}
}

// saveExchange appends a question and its reply, creating the conversation
// on its first exchange. Without a repository nothing is saved.
func saveExchange(ctx context.Context, repo repository.ConversationRepo, conv *domain.Conversation, question, reply, source string) (*domain.Conversation, error) {
	if repo == nil {
		return conv, nil
	}
	if conv == nil {
		c := &domain.Conversation{}
		if err := repo.Create(ctx, c); err != nil {
			return nil, err
		}
		conv = c
	}
	err := repo.AppendTurns(ctx,
		&domain.Turn{ConversationID: conv.ID, Role: domain.RoleUser, Content: question},
		&domain.Turn{ConversationID: conv.ID, Role: domain.RoleAssistant, Content: reply, Source: source},
	)
	return conv, err
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *chatModel) content() string {
	out := strings.Join(m.blocks, "\n")
	if m.busy {
		out += "\n" + formatter.Dim("Analyzing data...")
	}
	return out
}

func (m *chatModel) appendBlock(block string) {
	m.blocks = append(m.blocks, block)
	m.syncViewport()
}

func (m *chatModel) syncViewport() {
	m.vp.SetContent(m.content())
	m.vp.GotoBottom()
}

func (m *chatModel) resize(width, height int) {
	m.width, m.height = width, height
	m.vp.Width = width
	m.vp.Height = max(height-chatChromeLines, 1)
	m.input.Width = max(width-8, 10)
	m.syncViewport()
}

// chatViewportKeyMap scrolls with arrows and paging keys only, leaving
// letters to the input.
func chatViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
}
