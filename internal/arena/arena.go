// Package arena draws the reaction target inside its presentation zone.
//
// Positions and sizes live in world units: the zone is an 8x6 box centered on
// the anchor, and a target of scale s has radius s. View maps the world onto
// terminal cells.
package arena

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/reflex/internal/difficulty"
	"github.com/verte-zerg/reflex/internal/model"
)

// Rand is the random source used for placement. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Zone is an axis-aligned region in world units.
type Zone struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns the zone's horizontal extent.
func (z Zone) Width() float64 { return z.MaxX - z.MinX }

// Height returns the zone's vertical extent.
func (z Zone) Height() float64 { return z.MaxY - z.MinY }

// Inset shrinks the zone by padding on every side. ok is false when nothing is left.
func (z Zone) Inset(padding float64) (Zone, bool) {
	in := Zone{
		MinX: z.MinX + padding,
		MaxX: z.MaxX - padding,
		MinY: z.MinY + padding,
		MaxY: z.MaxY - padding,
	}
	return in, in.MinX < in.MaxX && in.MinY < in.MaxY
}

// DefaultZone is the 4:3 play area around the anchor.
var DefaultZone = Zone{MinX: -4, MaxX: 4, MinY: -3, MaxY: 3}

const targetGlyph = "█"

var palette = map[model.Color]lipgloss.Color{
	model.ColorIdle:     lipgloss.Color("#1E293B"),
	model.ColorActive:   lipgloss.Color("#10B981"),
	model.ColorDecoy:    lipgloss.Color("#A855F7"),
	model.ColorDecoyAlt: lipgloss.Color("#F59E0B"),
	model.ColorError:    lipgloss.Color("#F43F5E"),
}

// Accent is the zone border and highlight color.
var Accent = lipgloss.Color("#22D3EE")

// ColorOf returns the terminal color for a tag.
func ColorOf(c model.Color) lipgloss.Color {
	return palette[c]
}

// Arena is the terminal renderer for the target.
type Arena struct {
	rnd  Rand
	zone Zone

	color       model.Color
	scale       float64
	x, y        float64
	zoneVisible bool

	cols int
	rows int
}

// New returns an idle arena with the target at the anchor.
func New(rnd Rand) *Arena {
	return &Arena{
		rnd:   rnd,
		zone:  DefaultZone,
		color: model.ColorIdle,
		scale: difficulty.ScaleAtMin,
		cols:  48,
		rows:  18,
	}
}

// SetZone replaces the play area.
func (a *Arena) SetZone(z Zone) {
	a.zone = z
}

// Resize sets the number of terminal cells available inside the border.
func (a *Arena) Resize(cols, rows int) {
	if cols < 3 {
		cols = 3
	}
	if rows < 3 {
		rows = 3
	}
	a.cols = cols
	a.rows = rows
}

// SetColor shows the given tag.
func (a *Arena) SetColor(c model.Color) { a.color = c }

// CurrentColor returns the tag currently shown.
func (a *Arena) CurrentColor() model.Color { return a.color }

// SetScale sets the target radius in world units.
func (a *Arena) SetScale(scale float64) { a.scale = scale }

// Scale returns the target radius in world units.
func (a *Arena) Scale() float64 { return a.scale }

// SetPosition moves the target.
func (a *Arena) SetPosition(x, y float64) {
	a.x = x
	a.y = y
}

// Position returns the target center.
func (a *Arena) Position() (float64, float64) { return a.x, a.y }

// ResetPosition moves the target to the center of the zone.
func (a *Arena) ResetPosition() {
	a.SetPosition((a.zone.MinX+a.zone.MaxX)/2, (a.zone.MinY+a.zone.MaxY)/2)
}

// ToggleZone shows or hides the zone border.
func (a *Arena) ToggleZone(visible bool) { a.zoneVisible = visible }

// ZoneVisible reports whether the border is drawn.
func (a *Arena) ZoneVisible() bool { return a.zoneVisible }

// RandomPositionInZone places the target uniformly inside the zone shrunk by
// padding. When the padding leaves no room the target goes back to the anchor.
func (a *Arena) RandomPositionInZone(padding float64) {
	safe, ok := a.zone.Inset(padding)
	if !ok {
		a.ResetPosition()
		return
	}
	x := safe.MinX + a.rnd.Float64()*safe.Width()
	y := safe.MinY + a.rnd.Float64()*safe.Height()
	a.SetPosition(x, y)
}

// View renders the arena as cols x rows cells plus a border.
func (a *Arena) View() string {
	grid := a.cells()
	fill := lipgloss.NewStyle().Foreground(palette[a.color])
	lines := make([]string, len(grid))
	for r, row := range grid {
		var b strings.Builder
		run := 0
		flush := func() {
			if run > 0 {
				b.WriteString(fill.Render(strings.Repeat(targetGlyph, run)))
				run = 0
			}
		}
		for _, on := range row {
			if on {
				run++
				continue
			}
			flush()
			b.WriteByte(' ')
		}
		flush()
		lines[r] = b.String()
	}

	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true)
	if a.zoneVisible {
		border = border.BorderForeground(Accent)
	} else {
		border = border.BorderStyle(lipgloss.HiddenBorder())
	}
	return border.Render(strings.Join(lines, "\n"))
}

// cells rasterizes the target into a grid of filled cells.
func (a *Arena) cells() [][]bool {
	grid := make([][]bool, a.rows)
	for r := range grid {
		grid[r] = make([]bool, a.cols)
	}
	w, h := a.zone.Width(), a.zone.Height()
	if w <= 0 || h <= 0 {
		return grid
	}
	cx := (a.x - a.zone.MinX) / w * float64(a.cols-1)
	cy := (a.zone.MaxY - a.y) / h * float64(a.rows-1)
	rx := a.scale / w * float64(a.cols)
	ry := a.scale / h * float64(a.rows)

	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			dx := (float64(c) - cx) / rx
			dy := (float64(r) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				grid[r][c] = true
			}
		}
	}
	col, row := clampIndex(cx, a.cols), clampIndex(cy, a.rows)
	grid[row][col] = true
	return grid
}

func clampIndex(v float64, n int) int {
	i := int(v + 0.5)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
