// Package renderer draws the tile map and its actors with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwalk/camera"
	"github.com/pthm-cable/gridwalk/components"
	"github.com/pthm-cable/gridwalk/config"
)

// Map colors.
var (
	backgroundColor = rl.Color{R: 24, G: 28, B: 34, A: 255}
	tileColorA      = rl.Color{R: 44, G: 60, B: 52, A: 255}
	tileColorB      = rl.Color{R: 50, G: 68, B: 58, A: 255}
	gridLineColor   = rl.Color{R: 30, G: 40, B: 36, A: 255}
	bodyColor       = rl.Color{R: 220, G: 180, B: 120, A: 255}
	detailColor     = rl.Color{R: 40, G: 30, B: 30, A: 255}
)

// WorldRenderer draws the tile grid and the player through a camera view.
type WorldRenderer struct {
	mapCfg config.MapConfig
	sprite config.SpriteConfig
	view   *camera.View
}

// NewWorldRenderer creates a renderer for a screen of the given size.
func NewWorldRenderer(cfg *config.Config) *WorldRenderer {
	return &WorldRenderer{
		mapCfg: cfg.Map,
		sprite: cfg.Sprite,
		view:   camera.NewView(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Derived.DefaultScale),
	}
}

// View returns the camera view used for the last frame.
func (r *WorldRenderer) View() *camera.View {
	return r.view
}

// SetCamera points the view at the main camera.
func (r *WorldRenderer) SetCamera(tr components.Transform, proj components.Projection) {
	r.view.X = tr.Translation.X
	r.view.Y = tr.Translation.Y
	if proj.Scale > 0 {
		r.view.Scale = proj.Scale
	}
}

// Resize updates the viewport after a window resize.
func (r *WorldRenderer) Resize(width, height int32) {
	r.view.Resize(float64(width), float64(height))
}

// Draw renders the visible part of the grid and the player.
func (r *WorldRenderer) Draw(player components.Transform, sprite components.Sprite) {
	rl.ClearBackground(backgroundColor)
	r.drawTiles()
	r.drawActor(player, sprite)
}

// drawTiles draws a checkerboard of the map tiles inside the view.
// Tiles are centered on multiples of the tile size, so the player sits on a tile center.
func (r *WorldRenderer) drawTiles() {
	ts := r.mapCfg.TileSize
	halfW := r.mapCfg.WidthTiles / 2
	halfH := r.mapCfg.HeightTiles / 2

	minX, minY, maxX, maxY := r.view.VisibleWorldBounds()
	x0 := max(-halfW, int(math.Floor(minX/ts)))
	x1 := min(r.mapCfg.WidthTiles-halfW-1, int(math.Ceil(maxX/ts)))
	y0 := max(-halfH, int(math.Floor(minY/ts)))
	y1 := min(r.mapCfg.HeightTiles-halfH-1, int(math.Ceil(maxY/ts)))

	sizePx := float32(ts / r.view.Scale)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			// top-left corner in world space is (x - ts/2, y + ts/2) since y points up
			sx, sy := r.view.WorldToScreen(float64(tx)*ts-ts/2, float64(ty)*ts+ts/2)
			color := tileColorA
			if (tx+ty)%2 != 0 {
				color = tileColorB
			}
			rect := rl.Rectangle{X: float32(sx), Y: float32(sy), Width: sizePx, Height: sizePx}
			rl.DrawRectangleRec(rect, color)
			rl.DrawRectangleLinesEx(rect, 1, gridLineColor)
		}
	}
}

// drawActor draws the player as a simple figure. The frame index selects the
// pose and FlipX mirrors it horizontally.
func (r *WorldRenderer) drawActor(tr components.Transform, sprite components.Sprite) {
	size := sprite.Size
	if size <= 0 {
		size = r.sprite.Size
	}
	if !r.view.IsVisible(tr.Translation.X, tr.Translation.Y, size) {
		return
	}

	cx, cy := r.view.WorldToScreen(tr.Translation.X, tr.Translation.Y)
	px := float32(size / r.view.Scale)
	x := float32(cx) - px/2
	y := float32(cy) - px/2

	rl.DrawRectangleRec(rl.Rectangle{X: x + px*0.2, Y: y + px*0.1, Width: px * 0.6, Height: px * 0.7}, bodyColor)

	frame := r.sprite.DownIndex
	if sprite.Atlas != nil {
		frame = sprite.Atlas.Index
	}

	// mirror maps a horizontal offset within the sprite through FlipX
	mirror := func(fx float32) float32 {
		if sprite.FlipX {
			return x + px*(1-fx)
		}
		return x + px*fx
	}

	dot := px * 0.08
	switch {
	case frame == r.sprite.DownIndex:
		rl.DrawCircleV(rl.Vector2{X: mirror(0.38), Y: y + px*0.3}, dot, detailColor)
		rl.DrawCircleV(rl.Vector2{X: mirror(0.62), Y: y + px*0.3}, dot, detailColor)
	case frame == r.sprite.UpIndex:
		rl.DrawRectangleRec(rl.Rectangle{X: x + px*0.3, Y: y + px*0.15, Width: px * 0.4, Height: px * 0.1}, detailColor)
	default:
		// walk frames: eye faces left in the sheet, legs alternate
		rl.DrawCircleV(rl.Vector2{X: mirror(0.3), Y: y + px*0.3}, dot, detailColor)
		stride := float32(0.15)
		if len(r.sprite.WalkIndices) > 1 && frame == r.sprite.WalkIndices[1] {
			stride = -stride
		}
		rl.DrawRectangleRec(rl.Rectangle{X: mirror(0.45+stride) - px*0.05, Y: y + px*0.8, Width: px * 0.1, Height: px * 0.15}, detailColor)
		rl.DrawRectangleRec(rl.Rectangle{X: mirror(0.55-stride) - px*0.05, Y: y + px*0.8, Width: px * 0.1, Height: px * 0.15}, detailColor)
	}
	// shadow line so flips on vertical travel are visible
	rl.DrawRectangleRec(rl.Rectangle{X: mirror(0.2), Y: y + px*0.95, Width: px * 0.1, Height: px * 0.05}, detailColor)
}
