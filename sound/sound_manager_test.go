package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestSoundManagerWithoutDevice(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cues panicked without an audio device: %v", r)
		}
	}()

	sm.FoodEaten(1)
	sm.RunEnded(1, nil)
	sm.SetMuted(true)
	sm.FoodEaten(2)
	sm.Cleanup()
}

func TestToneGeneratorLength(t *testing.T) {
	want := sampleRate.N(60 * time.Millisecond)
	s := beep.Take(want, NewToneGenerator(sampleRate, 880, 0.25))

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			peak = math.Max(peak, math.Abs(frame[0]))
			if frame[0] != frame[1] {
				t.Fatal("cue should be mono on both channels")
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("expected %d samples, got %d", want, total)
	}
	if peak == 0 || peak > 0.25 {
		t.Errorf("peak %v outside (0, 0.25]", peak)
	}
}

func TestToneGeneratorStartsSilent(t *testing.T) {
	g := NewToneGenerator(sampleRate, 440, 1)
	buf := make([][2]float64, 1)
	g.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample should be silent, got %v", buf[0][0])
	}
	if g.Err() != nil {
		t.Error("generator never fails")
	}
}
