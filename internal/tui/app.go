// ABOUTME: Interactive remix session as a bubbletea model.
// ABOUTME: Drives generation, candidate review, saving, sharing, and the saved sidebar.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/2389-research/remix/internal/llm"
	"github.com/2389-research/remix/internal/models"
	"github.com/2389-research/remix/internal/parser"
	"github.com/2389-research/remix/internal/prompt"
	"github.com/2389-research/remix/internal/share"
	"github.com/2389-research/remix/internal/store"
)

// genState is the generation side of the session state machine.
type genState int

const (
	genIdle genState = iota
	genRunning
	genDone
	genFailed
)

// savedState is the orthogonal saved-list state machine.
type savedState int

const (
	savedLoading savedState = iota
	savedLoaded
	savedFailed
)

// pingTimeout bounds the one-shot startup connectivity check.
const pingTimeout = 5 * time.Second

// focusArea selects which pane receives navigation keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusPosts
	focusSidebar
)

// Messages carrying async results back into Update.
type generateResultMsg struct {
	result parser.Result
	err    error
}

type savedListMsg struct {
	posts []*models.SavedPost
	err   error
}

type saveResultMsg struct {
	post *models.SavedPost
	err  error
}

type deleteResultMsg struct {
	id  uuid.UUID
	err error
}

type storePingMsg struct {
	err error
}

type sharedMsg struct {
	err error
}

// App is the bubbletea model for an interactive remix session.
type App struct {
	llm   llm.Client // nil when no credential is configured
	store store.Store

	input   textarea.Model
	spinner spinner.Model

	gen    genState
	posts  []models.Post
	raw    string // unparseable model output, kept for display
	genErr string

	savedSt  savedState
	saved    []*models.SavedPost
	savedErr string

	cursor      int
	sideCursor  int
	focus       focusArea
	showSidebar bool
	status      string

	width    int
	height   int
	quitting bool
}

// NewApp creates the session model. The completion client may be nil; the
// store must not be.
func NewApp(client llm.Client, st store.Store) App {
	input := textarea.New()
	input.Placeholder = "Paste your text here..."
	input.SetHeight(6)
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return App{
		llm:     client,
		store:   st,
		input:   input,
		spinner: s,
		savedSt: savedLoading,
		width:   100,
		height:  30,
	}
}

// Init implements tea.Model. Kicks off the one-shot store connectivity check
// and the initial saved-list load.
func (m App) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadSavedCmd(), m.pingCmd())
}

// Update implements tea.Model.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case generateResultMsg:
		return m.applyGenerateResult(msg), nil

	case savedListMsg:
		if msg.err != nil {
			// Existing in-memory list stays as-is on a failed refresh.
			m.savedSt = savedFailed
			m.savedErr = fmt.Sprintf("failed to load saved posts: %v", msg.err)
			return m, nil
		}
		m.savedSt = savedLoaded
		m.savedErr = ""
		m.saved = msg.posts
		m.clampSideCursor()
		return m, nil

	case saveResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Save failed: %v", msg.err))
			return m, nil
		}
		m.saved = append([]*models.SavedPost{msg.post}, m.saved...)
		m.showSidebar = true
		m.status = successStyle.Render("Saved.")
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Delete failed: %v", msg.err))
			return m, nil
		}
		for i, post := range m.saved {
			if post.ID == msg.id {
				m.saved = append(m.saved[:i], m.saved[i+1:]...)
				break
			}
		}
		m.clampSideCursor()
		m.status = "Deleted."
		return m, nil

	case storePingMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Store check failed: %v", msg.err))
		}
		return m, nil

	case sharedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Share failed: %v", msg.err))
		} else {
			m.status = "Opened share link in browser."
		}
		return m, nil

	case spinner.TickMsg:
		if m.gen == genRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlG:
		return m.startGeneration()

	case tea.KeyCtrlS:
		m.showSidebar = !m.showSidebar
		if !m.showSidebar && m.focus == focusSidebar {
			m.focus = focusPosts
		}
		return m, nil

	case tea.KeyTab:
		return m.cycleFocus(), nil

	case tea.KeyEscape:
		if m.focus == focusInput {
			m.input.Blur()
			m.focus = focusPosts
		} else {
			m.focus = focusInput
			m.input.Focus()
			return m, textarea.Blink
		}
		return m, nil
	}

	switch m.focus {
	case focusInput:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case focusPosts:
		return m.updatePostsKey(msg)
	case focusSidebar:
		return m.updateSidebarKey(msg)
	}
	return m, nil
}

func (m App) cycleFocus() App {
	m.input.Blur()
	switch m.focus {
	case focusInput:
		m.focus = focusPosts
	case focusPosts:
		if m.showSidebar {
			m.focus = focusSidebar
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
	case focusSidebar:
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

func (m App) updatePostsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}

	case "s":
		if m.cursor < len(m.posts) {
			return m, m.saveCmd(m.posts[m.cursor].Body)
		}

	case "t":
		if m.cursor < len(m.posts) {
			return m, shareCmd(share.TweetText(m.posts[m.cursor]))
		}
	}
	return m, nil
}

func (m App) updateSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.sideCursor > 0 {
			m.sideCursor--
		}

	case "down", "j":
		if m.sideCursor < len(m.saved)-1 {
			m.sideCursor++
		}

	case "d":
		if m.sideCursor < len(m.saved) {
			return m, m.deleteCmd(m.saved[m.sideCursor].ID)
		}

	case "t":
		if m.sideCursor < len(m.saved) {
			return m, shareCmd(share.TweetContent(m.saved[m.sideCursor].Content))
		}

	case "r":
		m.savedSt = savedLoading
		return m, m.loadSavedCmd()
	}
	return m, nil
}

// startGeneration begins one generation request unless one is already in
// flight or the input is empty.
func (m App) startGeneration() (tea.Model, tea.Cmd) {
	if m.gen == genRunning {
		return m, nil
	}
	source := strings.TrimSpace(m.input.Value())
	if source == "" {
		m.status = errorStyle.Render("Nothing to remix - paste some text first.")
		return m, nil
	}

	m.gen = genRunning
	m.status = ""
	return m, tea.Batch(m.generateCmd(source), m.spinner.Tick)
}

func (m App) applyGenerateResult(msg generateResultMsg) App {
	if msg.err != nil {
		m.gen = genFailed
		m.genErr = msg.err.Error()
		m.posts = nil
		m.raw = ""
		m.cursor = 0
		return m
	}
	if msg.result.Unparseable() {
		m.gen = genFailed
		m.genErr = "model output had no recognizable posts"
		m.posts = nil
		m.raw = msg.result.Raw
		m.cursor = 0
		return m
	}

	m.gen = genDone
	m.genErr = ""
	m.raw = ""
	m.posts = msg.result.Posts
	m.cursor = 0
	if m.focus == focusInput {
		m.input.Blur()
		m.focus = focusPosts
	}
	return m
}

func (m *App) clampSideCursor() {
	if m.sideCursor >= len(m.saved) {
		m.sideCursor = len(m.saved) - 1
	}
	if m.sideCursor < 0 {
		m.sideCursor = 0
	}
}

// Commands. Each closes over its inputs and returns exactly one message.

func (m App) generateCmd(source string) tea.Cmd {
	client := m.llm
	return func() tea.Msg {
		if client == nil {
			return generateResultMsg{err: llm.ErrNoAPIKey}
		}
		raw, err := client.Complete(context.Background(), prompt.Build(source))
		if err != nil {
			return generateResultMsg{err: err}
		}
		return generateResultMsg{result: parser.Parse(raw)}
	}
}

func (m App) loadSavedCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		posts, err := st.ListPosts(context.Background())
		return savedListMsg{posts: posts, err: err}
	}
}

func (m App) saveCmd(content string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		post, err := st.SavePost(context.Background(), content)
		return saveResultMsg{post: post, err: err}
	}
}

func (m App) deleteCmd(id uuid.UUID) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return deleteResultMsg{id: id, err: st.DeletePost(context.Background(), id)}
	}
}

func (m App) pingCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return storePingMsg{err: st.Ping(ctx)}
	}
}

func shareCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return sharedMsg{err: share.Open(share.IntentURL(text))}
	}
}

// View implements tea.Model.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(brandStyle.Render("REMIX"))
	b.WriteString(titleStyle.Render(" - text to posts"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	main := m.viewPosts()
	if m.showSidebar {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.viewSidebar())
	}
	b.WriteString(main)
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m App) viewPosts() string {
	var b strings.Builder

	switch m.gen {
	case genIdle:
		b.WriteString(dimStyle.Render("Press ctrl+g to remix the text above into five posts."))
		b.WriteString("\n")

	case genRunning:
		b.WriteString(m.spinner.View())
		b.WriteString(" Remixing...")
		b.WriteString("\n")

	case genFailed:
		b.WriteString(errorStyle.Render("✗ " + m.genErr))
		b.WriteString("\n")
		if m.raw != "" {
			b.WriteString(dimStyle.Render(truncate(m.raw, 300)))
			b.WriteString("\n")
		}

	case genDone:
		for i, post := range m.posts {
			header := fmt.Sprintf("Post %d", i+1)
			remaining := post.Remaining()
			counter := fmt.Sprintf("%d left", remaining)
			if remaining < 0 {
				counter = overStyle.Render(fmt.Sprintf("%d over", -remaining))
			}
			line := fmt.Sprintf("%s  %s", header, dimStyle.Render(counter))
			if m.focus == focusPosts && i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
			for _, segment := range post.Segments {
				b.WriteString("    " + segment + "\n")
			}
		}
	}
	return b.String()
}

func (m App) viewSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Saved"))
	b.WriteString("\n")

	switch m.savedSt {
	case savedLoading:
		b.WriteString(dimStyle.Render("loading..."))
	case savedFailed:
		b.WriteString(errorStyle.Render(m.savedErr))
	case savedLoaded:
		if len(m.saved) == 0 {
			b.WriteString(dimStyle.Render("nothing saved yet"))
		}
		for i, post := range m.saved {
			line := truncate(post.Content, 40)
			if m.focus == focusSidebar && i == m.sideCursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("  " + post.CreatedAt.Format("2006-01-02 15:04")))
			b.WriteString("\n")
		}
	}
	return sidebarStyle.Render(b.String())
}

func (m App) viewHelp() string {
	switch m.focus {
	case focusInput:
		return dimStyle.Render("ctrl+g: remix  esc: posts  ctrl+s: sidebar  ctrl+c: quit")
	case focusSidebar:
		return dimStyle.Render("j/k: move  d: delete  t: tweet  r: refresh  tab: input  q: quit")
	default:
		return dimStyle.Render("j/k: move  s: save  t: tweet  tab: sidebar  esc: edit  q: quit")
	}
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
