//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"chunk-ca/internal/core"
	"chunk-ca/pkg/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the cell view: chunk
// boundaries, allocated chunks and the padding chunks of the scan set.
type Overlay struct {
	sim   core.Sim
	view  *core.ByteGrid
	scale int

	showChunks bool
	showScan   bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, view *core.ByteGrid, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, view: view, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers. 1 shows chunk boundaries, 2 the scan set.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showChunks = !o.showChunks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showScan = !o.showScan
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showChunks && !o.showScan {
		return
	}
	g := o.sim.Grid()
	l := g.ChunkSize()

	if o.showScan {
		for _, idx := range g.ScanSet() {
			tint := color.NRGBA{R: 200, G: 120, B: 40, A: 40}
			if g.HasChunk(idx) {
				tint = color.NRGBA{R: 40, G: 160, B: 90, A: 50}
			}
			o.fillChunk(screen, idx, l, tint)
		}
	}
	if o.showChunks {
		o.drawChunkLines(screen, l, color.NRGBA{R: 90, G: 90, B: 110, A: 160})
	}
}

// toScreen converts a plane coordinate to a screen pixel coordinate.
func (o *Overlay) toScreen(p grid.Point) (float64, float64) {
	return float64((p.X - o.view.Origin.X) * o.scale), float64((p.Z - o.view.Origin.Z) * o.scale)
}

func (o *Overlay) fillChunk(screen *ebiten.Image, idx grid.ChunkIndex, l int, col color.Color) {
	x, y := o.toScreen(idx.Origin(l))
	side := float64(l * o.scale)
	w, h := float64(o.view.W*o.scale), float64(o.view.H*o.scale)
	if x+side <= 0 || y+side <= 0 || x >= w || y >= h {
		return
	}
	o.drawRect(screen, x, y, side, side, col)
}

func (o *Overlay) drawChunkLines(screen *ebiten.Image, l int, col color.Color) {
	w, h := float64(o.view.W*o.scale), float64(o.view.H*o.scale)
	first := grid.Pt(
		grid.FloorDiv(o.view.Origin.X, l)*l,
		grid.FloorDiv(o.view.Origin.Z, l)*l,
	)
	for x := first.X; x <= o.view.Origin.X+o.view.W; x += l {
		sx, _ := o.toScreen(grid.Pt(x, 0))
		if sx >= 0 {
			o.drawLine(screen, sx, 0, sx, h, 1, col)
		}
	}
	for z := first.Z; z <= o.view.Origin.Z+o.view.H; z += l {
		_, sy := o.toScreen(grid.Pt(0, z))
		if sy >= 0 {
			o.drawLine(screen, 0, sy, w, sy, 1, col)
		}
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.Color) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
