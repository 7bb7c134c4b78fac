// Package sound plays short cues for game events.
package sound

import (
	"math"
	"sync"
	"time"

	"snake-arcade/leaderboard"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes game cues into the speaker. Until Initialize succeeds
// every cue is a no-op, so a machine without audio still plays.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetMuted silences cues without closing the device.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// FoodEaten plays a short high blip.
func (sm *SoundManager) FoodEaten(score int) {
	sm.play(beep.Take(sampleRate.N(60*time.Millisecond), NewToneGenerator(sampleRate, 880, 0.25)))
}

// RunEnded plays a falling two-note buzz.
func (sm *SoundManager) RunEnded(score int, board []leaderboard.Entry) {
	sm.play(beep.Seq(
		beep.Take(sampleRate.N(150*time.Millisecond), NewToneGenerator(sampleRate, 330, 0.3)),
		beep.Take(sampleRate.N(350*time.Millisecond), NewToneGenerator(sampleRate, 220, 0.3)),
	))
}

// ToneGenerator is an endless sine wave with a short attack so cues do not click.
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pos  int
}

func NewToneGenerator(sr beep.SampleRate, freq, gain float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, gain: gain}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Min(float64(g.pos)/attack, 1.0)
		sample := g.gain * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
