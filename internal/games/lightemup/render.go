package lightemup

import (
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/lightemup/internal/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
	"github.com/vovakirdan/lightemup/internal/leaderboard"
)

// pipeGlyph returns the box-drawing rune for a cell's two openings.
func pipeGlyph(open core.DirSet) rune {
	up, down := open.Has(core.DirUp), open.Has(core.DirDown)
	left, right := open.Has(core.DirLeft), open.Has(core.DirRight)
	switch {
	case up && down:
		return '│'
	case left && right:
		return '─'
	case up && right:
		return '└'
	case up && left:
		return '┘'
	case down && right:
		return '┌'
	case down && left:
		return '┐'
	default:
		return '·'
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)
	g.renderBanner(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d for a %dx%d board", g.size*cellW+2, g.size+hudHeight+3, g.size, g.size))
		return
	}

	if g.session != nil {
		g.renderBoard(dst)
	}

	switch g.phase {
	case PhaseResult:
		lines := []string{
			"Solved!",
			fmt.Sprintf("Points: %d   Time: %s", g.result.Points, clock(time.Duration(g.result.Time)*time.Second)),
		}
		if g.result.PersonalRecord {
			lines = append(lines, "New personal record!")
		}
		if g.result.GlobalTop {
			lines = append(lines, "You are the new leader!")
		}
		lines = append(lines, "Space: next puzzle | B: menu")
		g.renderOverlay(dst, lines...)
	case PhaseTimeUp:
		lines := []string{"Time is up!", fmt.Sprintf("Score: %d   Boards: %d", g.summary.Score, g.solved)}
		if g.summary.Position > 0 {
			lines = append(lines, fmt.Sprintf("Leaderboard position: %d", g.summary.Position))
		}
		if g.summary.GlobalTop {
			lines = append(lines, "You are the new leader!")
		}
		lines = append(lines, "R: new run | B: menu")
		g.renderOverlay(dst, lines...)
	case PhaseFinishing:
		g.renderOverlay(dst, "Time is up!", "Recording score...")
	case PhaseError:
		g.renderOverlay(dst, "Something went wrong", g.errMsg, "R: try again | B: menu")
	default:
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderHUD draws the status line, controls hint and separator.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" Light 'Em Up | %s | %s %dx%d", g.mode, g.difficulty, g.size, g.size)
	if g.session != nil {
		lit := g.session.Lit()
		hud += fmt.Sprintf(" | Lit %d/%d | Time %s", lit.Len(), g.size*g.size, clock(g.session.Elapsed()))
	}
	if g.mode == leaderboard.ModeCompetition {
		hud += fmt.Sprintf(" | Left %s | Score %d | Boards %d", clock(g.timeLeft()), g.runScore, g.solved)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawTextWithColor(0, 1, " Arrows/WASD: Move | Space: Rotate | Click: Rotate | R: New | B: Menu", platformcore.ColorGray)
	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 2, '─', platformcore.ColorGray)
	}
}

// renderBoard draws every cell three columns wide: left arm, pipe, right arm.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	frame := platformcore.NewRect(g.board.X-1, g.board.Y-1, g.board.W+2, g.board.H+2)
	dst.DrawBox(frame, platformcore.ColorDarkGray)

	showCursor := g.phase == PhasePlaying
	for _, cell := range g.session.Cells() {
		x := g.board.X + cell.Coord.Col*cellW
		y := g.board.Y + cell.Coord.Row

		color := platformcore.ColorGray
		if cell.Lit {
			color = platformcore.ColorBrightYellow
		}
		cursor := showCursor && cell.Coord == g.cursor

		left, right := ' ', ' '
		if cell.Open.Has(core.DirLeft) {
			left = '─'
		}
		if cell.Open.Has(core.DirRight) {
			right = '─'
		}
		if cursor {
			if left == ' ' {
				left = '['
			}
			if right == ' ' {
				right = ']'
			}
		}

		pipeColor := color
		if cursor {
			pipeColor = platformcore.ColorBrightCyan
		}
		dst.SetWithColor(x, y, left, color)
		dst.SetWithColor(x+1, y, pipeGlyph(cell.Open), pipeColor)
		dst.SetWithColor(x+2, y, right, color)
	}
}

// renderBanner shows the latest announcement on the bottom line.
func (g *Game) renderBanner(dst *platformcore.Screen) {
	if g.banner == "" || !g.now().Before(g.bannerUntil) {
		return
	}
	dst.DrawTextCenteredWithColor(dst.Height()-1, "★ "+g.banner+" ★", platformcore.ColorBrightMagenta)
}

// renderOverlay draws a centered box with one line of text per argument.
func (g *Game) renderOverlay(dst *platformcore.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxLen {
			maxLen = n
		}
	}
	box := dst.Bounds().Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	for i, l := range lines {
		c := platformcore.ColorWhite
		if i == 0 {
			c = platformcore.ColorBrightYellow
		}
		dst.DrawTextCenteredWithColor(box.Y+1+i, l, c)
	}
}

// clock formats d as m:ss.
func clock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
