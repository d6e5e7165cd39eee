package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bounce/internal/sim"
)

func toRaylib(c sim.Color) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

func (a *App) drawSpheres(snap *sim.Snapshot) {
	for _, e := range snap.Entities {
		center := rl.NewVector2(float32(e.X), float32(e.Y))
		rl.DrawCircleV(center, float32(e.Radius), toRaylib(e.Color))
		rl.DrawCircleLinesV(center, float32(e.Radius), toRaylib(e.Color.Blend(sim.Black, 0.4)))
		if a.ShowVectors {
			tip := rl.NewVector2(float32(e.X+e.VX*6), float32(e.Y+e.VY*6))
			rl.DrawLineEx(center, tip, 2, ColSelect)
		}
	}
}

func (a *App) drawStats(snap *sim.Snapshot) {
	rl.DrawRectangle(12, 12, 260, 200, ColPanel)

	c := snap.Counters
	g := a.Opts.Global
	if g.Available() {
		g = g.Add(c)
	}

	rows := []struct {
		label string
		value string
	}{
		{"SESSION", ""},
		{"running", fmt.Sprint(snap.Running())},
		{"spheres", fmt.Sprint(c.Spawned)},
		{"sphere hits", fmt.Sprint(c.SphereHits)},
		{"wall hits", fmt.Sprint(c.WallHits)},
		{"GLOBAL", ""},
		{"spheres", fmt.Sprint(g.Spawned)},
		{"sphere hits", fmt.Sprint(g.SphereHits)},
		{"wall hits", fmt.Sprint(g.WallHits)},
	}

	y := int32(22)
	for _, r := range rows {
		if r.value == "" {
			a.drawText(r.label, 24, y, 14, ColAccent)
		} else {
			a.drawText(r.label, 36, y, 14, ColText)
			a.drawText(r.value, 170, y, 14, ColSelect)
		}
		y += 20
	}
}

func (a *App) drawForm() {
	x, y := int32(rl.GetScreenWidth())-300, int32(70)
	rl.DrawRectangle(x-12, y-12, 290, int32(len(formFields))*28+70, ColPanel)
	a.drawText("spawn", x, y, 20, ColSelect)
	y += 34

	for i, f := range formFields {
		col := ColText
		prefix := "  "
		if i == a.Form.Selected {
			col, prefix = ColSelect, "> "
		}
		a.drawText(fmt.Sprintf("%s%-8s %s", prefix, f, a.Form.Value(i)), x, y, 18, col)
		y += 28
	}
	rl.DrawCircle(x+240, y-int32(len(formFields))*28+12, 8, toRaylib(a.Form.Color))
	a.drawText("ARROWS: EDIT  R: RESET  ENTER: SPAWN", x, y+6, 12, ColTextDim)
}

func (a *App) drawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX := float32(20)
	rectY := float32(rl.GetScreenHeight()) - 110
	width, height := float32(400), float32(60)

	hi := 1.0
	for _, v := range a.Telemetry {
		hi = max(hi, v)
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := rectX + float32(i)/float32(maxTelemetry)*width
		py := rectY + height - float32(v/hi)*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("hits/frame %.0f", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
