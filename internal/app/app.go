//go:build ebiten

package app

import (
	"time"

	"chunk-ca/internal/core"
	"chunk-ca/internal/render"
	"chunk-ca/internal/ui"
	"chunk-ca/pkg/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width in pixels of the parameter panel.
const HUDWidth = 220

// panStep is how many cells one arrow key press moves the viewport.
const panStep = 8

// Game adapts a core simulation to the ebiten.Game interface. It draws a
// fixed-size window of the unbounded grid that the user can pan around.
type Game struct {
	sim     core.Sim
	view    *core.ByteGrid
	painter *render.GridPainter
	palette render.Palette
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game showing a w*h cell viewport centred on the origin.
func New(sim core.Sim, w, h, scale int, seed int64) *Game {
	view := core.NewByteGrid(w, h)
	view.CenterOn(grid.Pt(0, 0))
	return &Game{
		sim:     sim,
		view:    view,
		painter: render.NewGridPainter(view.W, view.H),
		palette: render.PaletteFor(sim.Name()),
		hud:     ui.NewHUD(sim, HUDWidth),
		overlay: ui.NewOverlay(sim, view, scale),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.view.CenterOn(grid.Pt(0, 0))
	}
	g.handlePan()

	g.overlay.Update()
	g.hud.Update(g.view.W * g.scale)

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handlePan() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.view.Pan(-panStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.view.Pan(panStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.view.Pan(0, -panStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.view.Pan(0, panStep)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.view.Capture(g.sim.Grid())
	g.painter.BlitPalette(screen, g.view.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.view.W*g.scale, g.view.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.W*g.scale + HUDWidth, g.view.H * g.scale
}
