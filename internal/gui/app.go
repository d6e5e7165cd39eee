// Package gui is the raylib window frontend. The window loop owns the
// simulator: it ticks once per rendered frame with the current window size as
// the viewport.
package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(20, 20, 24, 230)
)

const maxTelemetry = 240

type Options struct {
	Title  string
	Width  int32
	Height int32
	FPS    int32
	Global storage.Totals
	Logger *log.Logger
}

type App struct {
	Sim     *sim.Simulator
	Opts    Options
	Form    Form
	Running bool

	ShowVectors bool
	ShowForm    bool
	ShowStats   bool

	Telemetry []float64
	last      sim.Counters
	lastErr   error
	logger    *log.Logger
}

func NewApp(s *sim.Simulator, opts Options) *App {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "bounce"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		Sim:       s,
		Opts:      opts,
		Form:      NewForm(),
		Running:   true,
		ShowStats: true,
		Telemetry: make([]float64, 0, maxTelemetry),
		logger:    logger.WithPrefix("gui"),
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(a.Opts.Width, a.Opts.Height, a.Opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(a.Opts.FPS)
	rl.SetExitKey(0)

	a.logger.Info("window opened", "width", a.Opts.Width, "height", a.Opts.Height)
	for !rl.WindowShouldClose() {
		if !a.Update() {
			break
		}
		a.Draw()
	}
}

// Bounds is the drawable area in world units, one unit per pixel.
func (a *App) Bounds() physics.Bounds {
	return physics.NewBounds(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
}

// Update applies input and advances one frame. It reports false when the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyV):
		a.ShowVectors = !a.ShowVectors
	case rl.IsKeyPressed(rl.KeyS):
		a.Sim.SetSoundEnabled(!a.Sim.SoundEnabled())
	case rl.IsKeyPressed(rl.KeyC):
		a.Sim.ClearAll()
	case rl.IsKeyPressed(rl.KeyTab):
		a.ShowForm = !a.ShowForm
	case rl.IsKeyPressed(rl.KeyI):
		a.ShowStats = !a.ShowStats
	}

	if a.ShowForm {
		a.updateForm()
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.spawn(a.Form.Config().At(float64(mouse.X), float64(mouse.Y)))
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		if e, ok := a.Sim.Snapshot().At(float64(mouse.X), float64(mouse.Y)); ok {
			a.Sim.Delete(e.Handle)
		}
	}

	if a.Running && rl.GetScreenWidth() > 0 && rl.GetScreenHeight() > 0 {
		a.step()
	}
	return true
}

func (a *App) updateForm() {
	switch {
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		a.Form.Next()
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		a.Form.Prev()
	case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL):
		a.Form.Adjust(1)
	case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH):
		a.Form.Adjust(-1)
	case rl.IsKeyPressed(rl.KeyR):
		a.Form.Reset()
	case rl.IsKeyPressed(rl.KeyEnter):
		a.spawn(a.Form.Config())
	}
}

func (a *App) spawn(cfg sim.SpawnConfig) {
	if _, err := a.Sim.Spawn(cfg); err != nil {
		a.lastErr = err
	}
}

func (a *App) step() {
	if err := a.Sim.Tick(a.Bounds()); err != nil {
		a.lastErr = err
		return
	}
	c := a.Sim.Snapshot().Counters
	a.Telemetry = append(a.Telemetry, float64(c.SphereHits-a.last.SphereHits+c.WallHits-a.last.WallHits))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	a.last = c
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	snap := a.Sim.Snapshot()
	a.drawSpheres(snap)
	a.drawHUD(snap)
	if a.ShowStats {
		a.drawStats(snap)
	}
	if a.ShowForm {
		a.drawForm()
	}
	a.drawTelemetry()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int32, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}

func (a *App) drawHUD(snap *sim.Snapshot) {
	h := int32(rl.GetScreenHeight())
	w := int32(rl.GetScreenWidth())

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, w-120, 20, 16, col)

	sound := "SOUND OFF"
	if a.Sim.SoundEnabled() {
		sound = "SOUND ON"
	}
	a.drawText(sound, w-120, 40, 14, ColText)

	a.drawText("[LMB] SPAWN  [RMB] DELETE  [TAB] FORM  [C] CLEAR  [S] SOUND  [SPACE] PAUSE  [Q] QUIT", 20, h-24, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS  frame %d", rl.GetFPS(), snap.Frame), w-200, h-24, 14, ColTextDim)

	if a.lastErr != nil {
		a.drawText(a.lastErr.Error(), 20, h-48, 14, rl.Red)
	}
}
