// Package sound plays short synthesized tones for simulation events.
// Audio is optional: every call is a no-op until Initialize succeeds.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one tone: a start frequency gliding to End over Duration.
type Cue struct {
	Freq     float64
	End      float64
	Duration time.Duration
	Volume   float64
}

// CueFor returns the tone for an event, if it has one.
func CueFor(e sim.Event) (Cue, bool) {
	switch ev := e.(type) {
	case sim.BrickHit:
		switch {
		case ev.Indestructible:
			return Cue{Freq: 220, End: 220, Duration: 30 * time.Millisecond, Volume: 0.2}, true
		case ev.Destroyed:
			return Cue{Freq: 880, End: 660, Duration: 50 * time.Millisecond, Volume: 0.25}, true
		default:
			return Cue{Freq: 660, End: 660, Duration: 40 * time.Millisecond, Volume: 0.2}, true
		}
	case sim.PaddleHit:
		return Cue{Freq: 440, End: 440, Duration: 40 * time.Millisecond, Volume: 0.25}, true
	case sim.WallHit:
		return Cue{Freq: 330, End: 330, Duration: 20 * time.Millisecond, Volume: 0.15}, true
	case sim.PowerUpActivated:
		return Cue{Freq: 523, End: 1046, Duration: 150 * time.Millisecond, Volume: 0.25}, true
	case sim.BulletFired:
		return Cue{Freq: 1400, End: 900, Duration: 30 * time.Millisecond, Volume: 0.1}, true
	case sim.EnemyExploded:
		return Cue{Freq: 180, End: 60, Duration: 120 * time.Millisecond, Volume: 0.3}, true
	case sim.LifeLost:
		return Cue{Freq: 392, End: 98, Duration: 400 * time.Millisecond, Volume: 0.3}, true
	case sim.LevelCleared, sim.GameCompleted:
		return Cue{Freq: 784, End: 1568, Duration: 300 * time.Millisecond, Volume: 0.25}, true
	}
	return Cue{}, false
}

// Player mixes cues into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player. Call Initialize before expecting sound.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play queues a cue.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(beep.Take(sampleRate.N(c.Duration), NewToneGenerator(sampleRate, c)))
	speaker.Unlock()
}

// Sink returns an event sink that plays the cue for each event.
func (p *Player) Sink() sim.EventSink {
	return func(e sim.Event) {
		if c, ok := CueFor(e); ok {
			p.Play(c)
		}
	}
}

// ToneGenerator streams a sine glide with a short attack and linear decay.
type ToneGenerator struct {
	sr    beep.SampleRate
	cue   Cue
	total int
	pos   int
	phase float64
}

// NewToneGenerator creates a generator for c.
func NewToneGenerator(sr beep.SampleRate, c Cue) *ToneGenerator {
	return &ToneGenerator{sr: sr, cue: c, total: max(sr.N(c.Duration), 1)}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := float64(g.sr.N(3 * time.Millisecond))
	for i := range samples {
		progress := float64(g.pos) / float64(g.total)
		freq := g.cue.Freq + (g.cue.End-g.cue.Freq)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		envelope := math.Max(1-progress, 0)
		if a := float64(g.pos) / attack; a < 1 {
			envelope *= a
		}
		sample := g.cue.Volume * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
