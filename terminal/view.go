package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridwalk/components"
	"github.com/pthm-cable/gridwalk/config"
)

// Styles
var (
	tileColorA  = tcell.NewRGBColor(44, 60, 52)
	tileColorB  = tcell.NewRGBColor(50, 68, 58)
	tileStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Frame is the state drawn in one terminal frame.
type Frame struct {
	Camera     components.Transform
	Projection components.Projection
	Player     components.Transform
	Sprite     components.Sprite
	Status     string
}

// View maps world coordinates to terminal cells. A row spans
// tile_size*scale*2 world units and a column half that, since cells are about twice as tall as wide.
type View struct {
	mapCfg config.MapConfig
	sprite config.SpriteConfig
}

// NewView creates a terminal view for the map.
func NewView(cfg *config.Config) *View {
	return &View{mapCfg: cfg.Map, sprite: cfg.Sprite}
}

func (v *View) unitsPerRow(scale float64) float64 {
	return v.mapCfg.TileSize * scale * 2
}

// CellOf returns the column and row of a world point for a screen of w x h cells.
func (v *View) CellOf(f Frame, w, h int, wx, wy float64) (col, row int) {
	rowUnits := v.unitsPerRow(f.Projection.Scale)
	colUnits := rowUnits / 2
	col = w/2 + int(math.Round((wx-f.Camera.Translation.X)/colUnits))
	row = h/2 - int(math.Round((wy-f.Camera.Translation.Y)/rowUnits))
	return col, row
}

// Draw renders f to the screen. The top row is the status line.
func (v *View) Draw(s tcell.Screen, f Frame) {
	w, h := s.Size()
	s.Clear()

	ts := v.mapCfg.TileSize
	rowUnits := v.unitsPerRow(f.Projection.Scale)
	colUnits := rowUnits / 2

	for row := 1; row < h; row++ {
		wy := f.Camera.Translation.Y - float64(row-h/2)*rowUnits
		ty := int(math.Round(wy / ts))
		for col := 0; col < w; col++ {
			wx := f.Camera.Translation.X + float64(col-w/2)*colUnits
			tx := int(math.Round(wx / ts))
			s.SetContent(col, row, ' ', nil, tileStyle.Background(v.tileColor(tx, ty)))
		}
	}

	col, row := v.CellOf(f, w, h, f.Player.Translation.X, f.Player.Translation.Y)
	if col >= 0 && col < w && row >= 1 && row < h {
		tx := int(math.Round(f.Player.Translation.X / ts))
		ty := int(math.Round(f.Player.Translation.Y / ts))
		s.SetContent(col, row, v.Glyph(f.Sprite), nil, playerStyle.Background(v.tileColor(tx, ty)))
	}

	drawText(s, 0, 0, w, fmt.Sprintf(" %-*s", w-1, f.Status), statusStyle)
	s.Show()
}

// tileColor returns the background of tile (tx, ty); off the map it is the terminal default.
func (v *View) tileColor(tx, ty int) tcell.Color {
	halfW := v.mapCfg.WidthTiles / 2
	halfH := v.mapCfg.HeightTiles / 2
	if tx < -halfW || tx >= v.mapCfg.WidthTiles-halfW || ty < -halfH || ty >= v.mapCfg.HeightTiles-halfH {
		return tcell.ColorDefault
	}
	if (tx+ty)%2 != 0 {
		return tileColorB
	}
	return tileColorA
}

// Glyph picks the player character from its frame index and flip.
func (v *View) Glyph(sprite components.Sprite) rune {
	frame := v.sprite.DownIndex
	if sprite.Atlas != nil {
		frame = sprite.Atlas.Index
	}
	switch frame {
	case v.sprite.DownIndex:
		return 'v'
	case v.sprite.UpIndex:
		return '^'
	}
	// walk frames face left unless flipped
	if sprite.FlipX {
		return '>'
	}
	return '<'
}

func drawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if i >= maxW {
			return
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}
