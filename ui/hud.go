package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwalk/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Tick      int64
	X, Y      float64 // player position in tiles
	State     string
	Facing    string
	Zoom      float64
	Crossings int
	FPS       int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    220,
	}
}

// Draw renders the status panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	x, y := int32(10), int32(10)
	r.DrawPanel(x, y, h.width, 7*r.Theme.LineHeight+2*pad+r.Theme.TitleSize)

	x += pad
	y += pad
	rl.DrawText(data.Title, x, y, r.Theme.TitleSize, r.Theme.Title)
	y += r.Theme.TitleSize + 4

	y = r.DrawLabelValue(x, y, "Tile", fmt.Sprintf("%.0f, %.0f", data.X, data.Y))
	y = r.DrawLabelValue(x, y, "State", data.State)
	y = r.DrawLabelValue(x, y, "Facing", data.Facing)
	y = r.DrawLabelValue(x, y, "Zoom", fmt.Sprintf("%.3f", data.Zoom))
	y = r.DrawLabelValue(x, y, "Crossings", fmt.Sprintf("%d", data.Crossings))
	r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d | FPS %d", data.Tick, data.FPS))
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, h.renderer.Theme.FontSize, h.renderer.Theme.HintColor)
}

// Buttons reports HUD buttons clicked this frame.
type Buttons struct {
	Zoom      bool
	Footsteps bool
}

// DrawButtons draws the raygui buttons in the top-right corner.
func (h *HUD) DrawButtons(screenWidth int32, footstepsOn bool) Buttons {
	x := float32(screenWidth - 130)
	var b Buttons
	b.Zoom = gui.Button(rl.Rectangle{X: x, Y: 10, Width: 120, Height: 30}, "Cycle Zoom")
	b.Footsteps = gui.Button(rl.Rectangle{X: x, Y: 46, Width: 120, Height: 30}, toggleText(footstepsOn, "Steps: on", "Steps: off"))
	return b
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
	Total    time.Duration
	Registry *systems.SystemRegistry
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the per-system timings in tick order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range data.Registry.All() {
		pct := data.PhasePct[info.ID]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", info.Name, data.PhaseAvg[info.ID].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
