// Package audio plays the short tone heard when the camera walks into a wall.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone returns a sine at hz lasting length, attenuated and faded out so it
// ends without a click.
func Tone(rate beep.SampleRate, hz float64, length time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, hz)
	if err != nil {
		return nil, fmt.Errorf("bump tone: %w", err)
	}

	total := rate.N(length)
	quiet := &effects.Volume{Streamer: sine, Base: 2, Volume: -2}
	return &fadeOut{streamer: beep.Take(total, quiet), total: total}, nil
}

// fadeOut ramps the volume linearly to zero over total samples.
type fadeOut struct {
	streamer beep.Streamer
	position int
	total    int
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := float64(f.total-f.position) / float64(f.total)
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }

// Player owns the speaker and plays bump tones on demand.
type Player struct {
	mu     sync.Mutex
	hz     float64
	length time.Duration
	open   bool
}

// NewPlayer initializes the speaker. The returned Player must be closed.
func NewPlayer(hz float64, length time.Duration) (*Player, error) {
	// Validate the tone before touching the audio device.
	if _, err := Tone(sampleRate, hz, length); err != nil {
		return nil, err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to open speaker: %w", err)
	}
	return &Player{hz: hz, length: length, open: true}, nil
}

// Bump plays one tone without blocking.
func (p *Player) Bump() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	tone, err := Tone(sampleRate, p.hz, p.length)
	if err != nil {
		return
	}
	speaker.Play(tone)
}

// Close releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		speaker.Close()
		p.open = false
	}
}
