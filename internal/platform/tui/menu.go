package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/core"
	"github.com/vovakirdan/lightemup/internal/leaderboard"
)

// menuRow identifies a line of the setup menu.
type menuRow int

const (
	rowMode menuRow = iota
	rowDifficulty
	rowSize
	rowStart
	rowScores
	rowQuit
	rowCount
)

var difficulties = []string{"easy", "medium", "hard"}

// MenuModel is the Bubble Tea model for choosing mode, difficulty and size.
type MenuModel struct {
	cursor         menuRow
	width          int
	height         int
	puzzle         config.PuzzleConfig
	config         core.RuntimeConfig
	mode           leaderboard.Mode
	difficulty     int
	keyMapper      *KeyMapper
	theme          Theme
	quitting       bool
	started        bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model starting from cfg's choices.
func NewMenuModel(puzzle config.PuzzleConfig, cfg core.RuntimeConfig) MenuModel {
	diff := 0
	for i, d := range difficulties {
		if d == cfg.Difficulty {
			diff = i
		}
	}
	if cfg.Size == 0 {
		cfg.Size = puzzle.DefaultSize
	}
	cfg.Size = puzzle.ClampSize(cfg.Size)
	cfg.Difficulty = difficulties[diff]

	return MenuModel{
		cursor:     rowStart,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		puzzle:     puzzle,
		config:     cfg,
		difficulty: diff,
		keyMapper:  NewKeyMapper(),
		theme:      GetTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < rowCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionSelect:
		switch m.cursor {
		case rowStart:
			m.started = true
			return m, tea.Quit
		case rowScores:
			m.openScoreboard = true
			return m, tea.Quit
		case rowQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.adjust(1)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// adjust cycles the option under the cursor by delta.
func (m *MenuModel) adjust(delta int) {
	switch m.cursor {
	case rowMode:
		if m.mode == leaderboard.ModeTraining {
			m.mode = leaderboard.ModeCompetition
		} else {
			m.mode = leaderboard.ModeTraining
		}
	case rowDifficulty:
		m.difficulty = (m.difficulty + delta + len(difficulties)) % len(difficulties)
		m.config.Difficulty = difficulties[m.difficulty]
	case rowSize:
		m.config.Size = m.puzzle.ClampSize(m.config.Size + delta)
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("L I G H T   'E M   U P"), m.width))
	b.WriteString("\n\n")
	subtitle := fmt.Sprintf("Turn the pipes until every cell is lit, %s", m.config.Player)
	b.WriteString(centerText(m.theme.MenuSubtitle.Render(subtitle), m.width))
	b.WriteString("\n\n")

	labels := [rowCount]string{
		rowMode:       "Mode",
		rowDifficulty: "Difficulty",
		rowSize:       "Size",
		rowStart:      "Start",
		rowScores:     "Scores",
		rowQuit:       "Quit",
	}
	values := map[menuRow]string{
		rowMode:       m.mode.String(),
		rowDifficulty: m.config.Difficulty,
		rowSize:       fmt.Sprintf("%dx%d", m.config.Size, m.config.Size),
	}

	for row := menuRow(0); row < rowCount; row++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if row == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%-10s", cursor, labels[row]))
		if v, ok := values[row]; ok {
			line += m.theme.MenuValue.Render(fmt.Sprintf("< %-11s >", v))
		} else {
			line += strings.Repeat(" ", 15)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
		if row == rowSize {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render(m.describe()), m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(m.theme.Help.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) describe() string {
	if m.mode == leaderboard.ModeCompetition {
		return "Solve as many boards as you can before time runs out"
	}
	return "Solve one board at your own pace"
}

// Selected reports whether the player chose Start.
func (m MenuModel) Selected() bool {
	return m.started
}

// Mode returns the chosen play mode.
func (m MenuModel) Mode() leaderboard.Mode {
	return m.mode
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config with the chosen difficulty and size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected():
		result.GameID = m.mode.GameID()
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg config.LightEmUpConfig, rc core.RuntimeConfig, opts ...tea.ProgramOption) (MenuResult, error) {
	model := NewMenuModel(cfg.Puzzle, rc)

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: rc}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: rc, Quit: true}, nil
	}
	return m.Result(), nil
}
