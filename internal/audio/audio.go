// Package audio plays the collision tones. The simulator calls Player.Handle
// on its own goroutine; the output device pulls mixed samples through a
// portaudio callback.
package audio

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/bounce/internal/sim"
)

const (
	SampleRate = 44100
	BufferSize = 512

	// MaxVoices caps the tones sounding at once.
	MaxVoices = 16
	// MinGap is the number of frames between two tones of the same kind.
	MinGap = 2
)

type Player struct {
	Stream *portaudio.Stream
	Volume float64

	mu     sync.Mutex
	mixer  beep.Mixer
	buf    [][2]float64
	last   map[sim.CollisionKind]uint64
	played map[sim.CollisionKind]uint64

	logger *log.Logger
	active bool
}

func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		Volume: 0.5,
		buf:    make([][2]float64, BufferSize),
		last:   make(map[sim.CollisionKind]uint64),
		played: make(map[sim.CollisionKind]uint64),
		logger: logger.WithPrefix("audio"),
	}
}

// Start opens the default output device. On failure the player stays usable
// and silent.
func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		p.logger.Warn("audio unavailable", "err", err)
		return fmt.Errorf("audio: init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.Fill)
	if err != nil {
		portaudio.Terminate()
		p.logger.Warn("audio unavailable", "err", err)
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		p.logger.Warn("audio unavailable", "err", err)
		return fmt.Errorf("audio: start stream: %w", err)
	}

	p.Stream = stream
	p.active = true
	p.logger.Info("audio started", "rate", SampleRate, "buffer", BufferSize)
	return nil
}

func (p *Player) Stop() {
	if !p.active {
		return
	}
	if p.Stream != nil {
		p.Stream.Stop()
		p.Stream.Close()
	}
	portaudio.Terminate()
	p.active = false
}

func (p *Player) Active() bool { return p.active }

// Handle queues the tone for one collision. It never blocks on the device
// and drops tones that arrive too close together or beyond MaxVoices.
func (p *Player) Handle(ev sim.CollisionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if last, ok := p.last[ev.Kind]; ok && ev.Frame < last+MinGap {
		return
	}
	if p.mixer.Len() >= MaxVoices {
		return
	}

	switch ev.Kind {
	case sim.WallCollision:
		p.mixer.Add(WallTone(SampleRate, p.Volume))
	case sim.SphereCollision:
		p.mixer.Add(SphereTone(SampleRate, p.Volume))
	default:
		return
	}
	p.last[ev.Kind] = ev.Frame
	p.played[ev.Kind]++
}

// Played reports how many tones of kind have been started.
func (p *Player) Played(kind sim.CollisionKind) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[kind]
}

func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// Fill is the output callback: it mixes the sounding tones into out,
// one slice per channel.
func (p *Player) Fill(out [][]float32) {
	n := len(out[0])
	if cap(p.buf) < n {
		p.buf = make([][2]float64, n)
	}
	buf := p.buf[:n]
	clear(buf)

	p.mu.Lock()
	p.mixer.Stream(buf)
	p.mu.Unlock()

	for i, s := range buf {
		out[0][i] = float32(clip(s[0]))
		if len(out) > 1 {
			out[1][i] = float32(clip(s[1]))
		}
	}
}

func clip(v float64) float64 {
	return min(max(v, -1), 1)
}
