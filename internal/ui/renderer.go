package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/gomokuplay/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	BoardColor     color.RGBA
	LineColor      color.RGBA
	BlackStone     color.RGBA
	WhiteStone     color.RGBA
	StoneOutline   color.RGBA
	LastMoveColor  color.RGBA
	WinLineColor   color.RGBA
	HoverColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme: a wood-grain board with
// black/white stones, in the teacher's muted-palette style.
func DefaultTheme() *Theme {
	return &Theme{
		BoardColor:    color.RGBA{222, 184, 135, 255}, // Burlywood
		LineColor:     color.RGBA{80, 56, 32, 255},
		BlackStone:    color.RGBA{20, 20, 20, 255},
		WhiteStone:    color.RGBA{245, 245, 245, 255},
		StoneOutline:  color.RGBA{0, 0, 0, 255},
		LastMoveColor: color.RGBA{220, 50, 50, 220},
		WinLineColor:  color.RGBA{230, 190, 40, 160},
		HoverColor:    color.RGBA{80, 56, 32, 90},
		Background:    color.RGBA{40, 44, 52, 255},
		TextColor:     color.RGBA{220, 220, 220, 255},
	}
}

// Renderer draws the board, stones, and highlights onto the screen.
// Grounded on the teacher's Renderer (internal/ui/renderer.go): the same
// square-size/HiDPI-scale shape, adapted from an 8x8 square grid to a
// 15x15 intersection grid where stones sit on line crossings rather than
// filling squares.
type Renderer struct {
	theme     *Theme
	cellSize  int
	margin    int
	scale     float64
}

// NewRenderer creates a renderer for a board.Size x board.Size intersection
// grid with the given cell spacing and outer margin, both in logical pixels.
func NewRenderer(cellSize, margin int) *Renderer {
	return &Renderer{
		theme:    DefaultTheme(),
		cellSize: cellSize,
		margin:   margin,
		scale:    1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// BoardPixels returns the side length of the square board area in logical
// pixels (margin on both sides plus Size-1 cell intervals).
func (r *Renderer) BoardPixels() int {
	return 2*r.margin + (board.Size-1)*r.cellSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// DrawBoard draws the wood background and the 15x15 grid lines.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	pixels := r.BoardPixels()
	vector.DrawFilledRect(screen, 0, 0, r.s(pixels), r.s(pixels), r.theme.BoardColor, false)

	for i := 0; i < board.Size; i++ {
		x := r.s(r.margin + i*r.cellSize)
		lineLen := r.s(r.margin + (board.Size-1)*r.cellSize)
		vector.StrokeLine(screen, x, r.s(r.margin), x, lineLen, 1, r.theme.LineColor, false)
		vector.StrokeLine(screen, r.s(r.margin), x, lineLen, x, 1, r.theme.LineColor, false)
	}

	r.drawStarPoints(screen)
}

// drawStarPoints marks the traditional Gomoku/Go star points: centre and
// the four points three intersections in from each corner.
func (r *Renderer) drawStarPoints(screen *ebiten.Image) {
	centre := board.Size / 2
	points := [][2]int{
		{centre, centre},
		{3, 3}, {3, board.Size - 4},
		{board.Size - 4, 3}, {board.Size - 4, board.Size - 4},
	}
	radius := r.s(r.cellSize) * 0.08
	for _, p := range points {
		cx, cy := r.IntersectionToScreen(p[0], p[1])
		vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LineColor, false)
	}
}

// IntersectionToScreen converts a (row, col) board coordinate to the
// scaled centre of its grid intersection.
func (r *Renderer) IntersectionToScreen(row, col int) (float32, float32) {
	x := r.s(r.margin + col*r.cellSize)
	y := r.s(r.margin + row*r.cellSize)
	return x, y
}

// ScreenToIntersection converts logical screen coordinates to the nearest
// board intersection, or board.NoMove if the click falls outside the grid
// or too far from any intersection to be an intentional placement.
func (r *Renderer) ScreenToIntersection(x, y int) board.Move {
	col := float64(x-r.margin)/float64(r.cellSize) + 0.5
	row := float64(y-r.margin)/float64(r.cellSize) + 0.5
	if col < 0 || row < 0 {
		return board.NoMove
	}
	ci, ri := int(col), int(row)
	if !board.InBounds(ri, ci) {
		return board.NoMove
	}
	cx, cy := r.margin+ci*r.cellSize, r.margin+ri*r.cellSize
	dx, dy := x-cx, y-cy
	snapRadius := r.cellSize / 2
	if dx*dx+dy*dy > snapRadius*snapRadius {
		return board.NoMove
	}
	return board.Move{Row: ri, Col: ci}
}

// DrawStones draws every placed stone, plus a small dot marking the last
// move played.
func (r *Renderer) DrawStones(screen *ebiten.Image, b *board.Board, lastMove board.Move) {
	radius := r.s(r.cellSize) * 0.42
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			stone := b.Get(row, col)
			if stone == board.Empty {
				continue
			}
			cx, cy := r.IntersectionToScreen(row, col)
			fill := r.theme.BlackStone
			if stone == board.White {
				fill = r.theme.WhiteStone
			}
			vector.DrawFilledCircle(screen, cx, cy, radius, fill, false)
			vector.StrokeCircle(screen, cx, cy, radius, 1, r.theme.StoneOutline, false)
		}
	}

	if lastMove.IsValid() {
		cx, cy := r.IntersectionToScreen(lastMove.Row, lastMove.Col)
		vector.DrawFilledCircle(screen, cx, cy, r.s(r.cellSize)*0.12, r.theme.LastMoveColor, false)
	}
}

// DrawWinningLine highlights the five winning stones with a connecting
// line plus filled markers, the way the teacher's DrawCheck overlays a
// king's square.
func (r *Renderer) DrawWinningLine(screen *ebiten.Image, line []board.Move) {
	if len(line) == 0 {
		return
	}
	first, last := line[0], line[len(line)-1]
	fx, fy := r.IntersectionToScreen(first.Row, first.Col)
	lx, ly := r.IntersectionToScreen(last.Row, last.Col)
	vector.StrokeLine(screen, fx, fy, lx, ly, r.s(r.cellSize)*0.12, r.theme.WinLineColor, false)

	for _, m := range line {
		cx, cy := r.IntersectionToScreen(m.Row, m.Col)
		vector.StrokeCircle(screen, cx, cy, r.s(r.cellSize)*0.46, 2, r.theme.WinLineColor, false)
	}
}

// DrawHover draws a faint marker at the intersection under the cursor,
// when it's a legal, empty, in-bounds cell.
func (r *Renderer) DrawHover(screen *ebiten.Image, b *board.Board, move board.Move) {
	if !move.IsValid() || !b.IsEmpty(move.Row, move.Col) {
		return
	}
	cx, cy := r.IntersectionToScreen(move.Row, move.Col)
	vector.DrawFilledCircle(screen, cx, cy, r.s(r.cellSize)*0.42, r.theme.HoverColor, false)
}
