package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSquare
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a finite mono tone duplicated on both channels.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, duration: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 4.0*math.Abs(o.phase-0.5) - 1.0
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential decay.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	decay    float64
}

func NewEnvelope(s beep.Streamer, attack, halfLife time.Duration, rate beep.SampleRate) beep.Streamer {
	half := max(rate.N(halfLife), 1)
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		decay:    math.Pow(0.5, 1/float64(half)),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		} else {
			vol = math.Pow(e.decay, float64(e.position-e.attack))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// WallTone is a short low knock.
func WallTone(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 70 * time.Millisecond
	body := NewEnvelope(NewOscillator(140, d, WaveTriangle, rate), 2*time.Millisecond, 12*time.Millisecond, rate)
	click := NewEnvelope(NewOscillator(420, d, WaveSquare, rate), time.Millisecond, 3*time.Millisecond, rate)
	return beep.Take(rate.N(d), newVolume(beep.Mix(newVolume(body, 0.8), newVolume(click, 0.2)), vol))
}

// SphereTone is a brighter two-partial ding.
func SphereTone(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 120 * time.Millisecond
	fund := NewEnvelope(NewOscillator(660, d, WaveSine, rate), 2*time.Millisecond, 25*time.Millisecond, rate)
	over := NewEnvelope(NewOscillator(1320, d, WaveSine, rate), 2*time.Millisecond, 10*time.Millisecond, rate)
	return beep.Take(rate.N(d), newVolume(beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)), vol))
}
