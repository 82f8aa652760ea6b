package cmd

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/talchemy/logoforge/internal/core/domain"
	"github.com/talchemy/logoforge/pkg/ui"
)

var reviewRunID string

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a run interactively and pick the keepers",
	Long: `Launch a full-screen interactive session for reviewing the concepts
of a run. Picks are written to picks.json in the run directory.

Keyboard Shortcuts:
  Navigation:
    ↑/k         Move up
    ↓/j         Move down
    g           Jump to top
    G           Jump to bottom

  Actions:
    Space       Toggle pick
    Enter/o     Open the PNG in the image viewer
    s           Save picks

  Views:
    /           Search mode
    Esc         Clear search / Exit mode
    ?           Show help

  General:
    q           Quit (saves picks)
    Ctrl+C      Force quit`,
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewRunID, "run", "r", "", "Run to review (default latest)")
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	run, err := resolveRun(ctx, reviewRunID)
	if err != nil {
		fmt.Println(ui.FormatError("Run not found"))
		return err
	}

	concepts, err := runRepo.LoadManifest(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to load run manifest: %w", err)
	}
	if len(concepts) == 0 {
		fmt.Println(ui.FormatWarning("Run has no concepts to review"))
		return nil
	}

	picks, err := reviewService.Load(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to load picks: %w", err)
	}

	m := newReviewModel(run, concepts, picks)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running review: %w", err)
	}

	// Persist picks on exit so quitting never loses work
	fm, ok := final.(reviewModel)
	if !ok {
		return nil
	}
	if err := reviewService.Save(ctx, run, fm.picks); err != nil {
		return fmt.Errorf("failed to save picks: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Saved %d picks for run %s", len(fm.picks.ConceptIDs), run.ID)))
	return nil
}

// Review view modes
type reviewMode int

const (
	reviewModeList reviewMode = iota
	reviewModeSearch
	reviewModeHelp
)

// Review model
type reviewModel struct {
	run           *domain.Run
	concepts      []domain.Concept // All concepts
	filtered      []domain.Concept // Filtered/searched concepts
	picks         domain.Picks
	cursor        int
	offset        int
	mode          reviewMode
	searchInput   textinput.Model
	help          help.Model
	keys          reviewKeyMap
	prompt        viewport.Model
	width         int
	height        int
	ready         bool
	message       string
	messageStyle  lipgloss.Style
	messageExpiry time.Time
	dirty         bool
}

// Key bindings
type reviewKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Toggle key.Binding
	Open   key.Binding
	Save   key.Binding
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
	Escape key.Binding
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Open, k.Save, k.Help, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Toggle, k.Open, k.Save},
		{k.Search, k.Help, k.Escape, k.Quit},
	}
}

var reviewKeys = reviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle pick"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter/o", "open PNG"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save picks"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

func newReviewModel(run *domain.Run, concepts []domain.Concept, picks domain.Picks) reviewModel {
	ti := textinput.New()
	ti.Placeholder = "Search concepts..."
	ti.CharLimit = 100
	ti.Width = 50

	vp := viewport.New(60, 10)
	vp.Style = lipgloss.NewStyle().Foreground(ui.ColorDefault)

	m := reviewModel{
		run:         run,
		concepts:    concepts,
		filtered:    concepts,
		picks:       picks,
		mode:        reviewModeList,
		searchInput: ti,
		help:        help.New(),
		keys:        reviewKeys,
		prompt:      vp,
	}
	m.setPrompt()
	return m
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

		promptWidth := (msg.Width / 2) - 4
		promptHeight := msg.Height - 12
		if promptHeight < 6 {
			promptHeight = 6
		}
		m.prompt.Width = promptWidth
		m.prompt.Height = promptHeight
		m.setPrompt()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case reviewModeSearch:
			return m.updateSearch(msg)
		case reviewModeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}

	case reviewStatusMsg:
		m.message = msg.message
		m.messageStyle = msg.style
		m.messageExpiry = time.Now().Add(3 * time.Second)
		return m, nil
	}

	return m, nil
}

func (m reviewModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			m.setPrompt()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			m.setPrompt()
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0
		m.setPrompt()

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.filtered) - 1
		m.adjustViewport()
		m.setPrompt()

	case msg.Type == tea.KeyPgUp:
		m.prompt.ViewUp()

	case msg.Type == tea.KeyPgDown:
		m.prompt.ViewDown()

	case key.Matches(msg, m.keys.Toggle):
		if len(m.filtered) > 0 {
			m.picks.Toggle(m.filtered[m.cursor].ID)
			m.dirty = true
		}

	case key.Matches(msg, m.keys.Open):
		if len(m.filtered) > 0 {
			return m, m.openConcept(m.filtered[m.cursor])
		}

	case key.Matches(msg, m.keys.Save):
		m.dirty = false
		return m, m.savePicks()

	case key.Matches(msg, m.keys.Search):
		m.mode = reviewModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.mode = reviewModeHelp
	}

	return m, nil
}

func (m reviewModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = reviewModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.filtered = m.concepts
		m.cursor = 0
		m.offset = 0
		m.setPrompt()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = reviewModeList
		m.searchInput.Blur()
		return m, nil

	// Only use arrow keys for navigation in search mode, not j/k
	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			m.setPrompt()
		}

	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			m.setPrompt()
		}

	default:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applySearch()
		m.setPrompt()
		return m, cmd
	}

	return m, nil
}

func (m reviewModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = reviewModeList
	}
	return m, nil
}

func (m reviewModel) View() string {
	if !m.ready {
		return "\n  Loading review..."
	}

	if m.mode == reviewModeHelp {
		return m.viewHelp()
	}
	return m.viewList()
}

func (m reviewModel) viewList() string {
	listWidth := int(float64(m.width) * 0.4)
	promptWidth := m.width - listWidth - 2
	if listWidth < 30 {
		listWidth = 30
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n\n")

	listContent := m.renderConceptList(listWidth)
	promptContent := m.renderPromptPane(promptWidth)

	listLines := strings.Split(listContent, "\n")
	promptLines := strings.Split(promptContent, "\n")

	maxLines := len(listLines)
	if len(promptLines) > maxLines {
		maxLines = len(promptLines)
	}

	for i := 0; i < maxLines; i++ {
		var listLine, promptLine string
		if i < len(listLines) {
			listLine = listLines[i]
		}
		if i < len(promptLines) {
			promptLine = promptLines[i]
		}
		s.WriteString(padLine(listLine, listWidth))
		s.WriteString("  ")
		s.WriteString(promptLine)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m reviewModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ui.ColorSuccess).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault)

	s.WriteString(titleStyle.Render("Logoforge Review - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Navigation",
			keys: []struct{ key, desc string }{
				{"↑ / k", "Move cursor up"},
				{"↓ / j", "Move cursor down"},
				{"g", "Jump to top"},
				{"G", "Jump to bottom"},
			},
		},
		{
			title: "Actions",
			keys: []struct{ key, desc string }{
				{"Space", "Toggle pick on the selected concept"},
				{"Enter / o", "Open the PNG in the image viewer"},
				{"s", "Save picks to picks.json"},
			},
		},
		{
			title: "Views & Search",
			keys: []struct{ key, desc string }{
				{"/", "Start search (type to filter, arrow keys to navigate)"},
				{"Esc", "Exit search / Cancel"},
				{"?", "Show this help"},
			},
		},
		{
			title: "General",
			keys: []struct{ key, desc string }{
				{"q", "Quit review (saves picks)"},
				{"Ctrl+C", "Force quit"},
			},
		},
	}

	for _, section := range sections {
		s.WriteString(sectionStyle.Render(section.title))
		s.WriteString("\n")
		for _, binding := range section.keys {
			s.WriteString("  ")
			s.WriteString(keyStyle.Render(binding.key))
			s.WriteString(descStyle.Render(binding.desc))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to review"))
	s.WriteString("\n")

	return s.String()
}

func (m reviewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	title := titleStyle.Render("🎨 Logoforge Review")
	stats := statsStyle.Render(fmt.Sprintf("%s  %s",
		m.run.ID,
		domain.SummaryLine(len(m.filtered), len(m.picks.ConceptIDs))))

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	spacer := m.width - titleWidth - statsWidth
	if spacer < 0 {
		spacer = 0
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacer),
		stats,
	)
}

func (m reviewModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == reviewModeSearch {
		borderColor = ui.ColorPrimary
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 4)

	var prompt string
	if m.mode == reviewModeSearch {
		prompt = ui.StylePrimary.Render("🔍 ")
	} else {
		prompt = ui.StyleMuted.Render("🔍 ")
	}

	content := prompt + m.searchInput.View()
	if m.mode != reviewModeSearch && m.searchInput.Value() == "" {
		content = prompt + ui.StyleMuted.Render("Press / to search...")
	}

	return searchStyle.Render(content)
}

func (m reviewModel) renderConceptList(width int) string {
	var s strings.Builder

	if len(m.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(2, 2).
			Width(width)

		if m.searchInput.Value() != "" {
			s.WriteString(emptyStyle.Render("No concepts match your search."))
		} else {
			s.WriteString(emptyStyle.Render("No concepts found."))
		}
		return s.String()
	}

	listHeight := m.height - 10
	if listHeight < 3 {
		listHeight = 3
	}

	start := m.offset
	end := m.offset + listHeight
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		s.WriteString(m.renderConceptItem(m.filtered[i], i == m.cursor, width))
	}

	return s.String()
}

func (m reviewModel) renderConceptItem(c domain.Concept, selected bool, width int) string {
	var cursor string
	titleStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)

	if selected {
		cursor = ui.StylePrimary.Render("▶ ")
		titleStyle = ui.StylePrimary.Copy().Bold(true)
	} else {
		cursor = "  "
	}

	pick := "  "
	if m.picks.Has(c.ID) {
		pick = ui.StyleSuccess.Render(ui.IconSuccess + " ")
	}

	maxTitleLen := width - 12
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := c.Title
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	line := fmt.Sprintf("%s%s%02d  %s",
		cursor,
		pick,
		c.ID,
		titleStyle.Render(title),
	)

	return padLine(line, width) + "\n"
}

func (m reviewModel) renderPromptPane(width int) string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(width - 2).
		Height(m.height - 12)

	if len(m.filtered) == 0 {
		return borderStyle.Render(
			lipgloss.NewStyle().
				Foreground(ui.ColorMuted).
				Italic(true).
				Padding(1).
				Render("No concept selected"),
		)
	}

	c := m.filtered[m.cursor]

	var s strings.Builder
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Width(width - 4)

	s.WriteString(titleStyle.Render(c.Title))
	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render(c.File))
	s.WriteString("\n\n")
	s.WriteString(m.prompt.View())

	return borderStyle.Render(s.String())
}

func (m reviewModel) renderFooter() string {
	var statusLine string
	if m.message != "" && time.Now().Before(m.messageExpiry) {
		statusLine = m.messageStyle.Render(m.message)
	} else if m.dirty {
		statusLine = ui.StyleMuted.Render("Unsaved picks (saved on quit)")
	} else {
		statusLine = ui.StyleMuted.Render("Ready")
	}

	helpHint := ui.StyleMuted.Render("[↑↓/jk] Navigate  [Space] Pick  [Enter/o] Open PNG  [/] Search  [?] Help  [q] Quit")

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		statusLine,
		helpHint,
	)

	return footerStyle.Render(content)
}

func padLine(s string, width int) string {
	// Strip ANSI codes to get real length
	realLen := lipgloss.Width(s)
	if realLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-realLen)
}

func (m *reviewModel) adjustViewport() {
	listHeight := m.height - 10
	if listHeight < 3 {
		listHeight = 3
	}

	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m *reviewModel) applySearch() {
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	if query == "" {
		m.filtered = m.concepts
	} else {
		var filtered []domain.Concept
		for _, c := range m.concepts {
			if strings.Contains(strings.ToLower(c.Title), query) ||
				strings.Contains(strings.ToLower(c.Prompt), query) {
				filtered = append(filtered, c)
			}
		}
		m.filtered = filtered
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewport()
}

// setPrompt refreshes the prompt viewport for the selected concept
func (m *reviewModel) setPrompt() {
	if len(m.filtered) == 0 {
		m.prompt.SetContent("")
		return
	}
	width := m.prompt.Width - 2
	if width < 20 {
		width = 20
	}
	m.prompt.SetContent(wrapText(m.filtered[m.cursor].Prompt, width))
	m.prompt.GotoTop()
}

// Commands

type reviewStatusMsg struct {
	message string
	style   lipgloss.Style
}

func (m reviewModel) openConcept(c domain.Concept) tea.Cmd {
	run := m.run
	return func() tea.Msg {
		imagePath := filepath.Join(run.Path, c.File)

		var cmd *exec.Cmd
		if appConfig.Browser != "" {
			cmd = exec.Command(appConfig.Browser, imagePath)
		} else {
			switch runtime.GOOS {
			case "darwin":
				cmd = exec.Command("open", imagePath)
			case "windows":
				cmd = exec.Command("cmd", "/c", "start", imagePath)
			default:
				cmd = exec.Command("xdg-open", imagePath)
			}
		}

		if err := cmd.Start(); err != nil {
			return reviewStatusMsg{
				message: fmt.Sprintf("Failed to open image: %v", err),
				style:   ui.StyleError,
			}
		}

		return reviewStatusMsg{
			message: fmt.Sprintf("Opened: %s", c.Title),
			style:   ui.StyleSuccess,
		}
	}
}

func (m reviewModel) savePicks() tea.Cmd {
	run := m.run
	picks := m.picks
	return func() tea.Msg {
		if err := reviewService.Save(getContext(), run, picks); err != nil {
			return reviewStatusMsg{
				message: fmt.Sprintf("Save failed: %v", err),
				style:   ui.StyleError,
			}
		}
		return reviewStatusMsg{
			message: fmt.Sprintf("✓ Saved %d picks", len(picks.ConceptIDs)),
			style:   ui.StyleSuccess,
		}
	}
}
