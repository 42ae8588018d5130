// Package audio plays a short tone whenever a fish is eaten.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/fishtank/config"
)

// Player reacts to predation events with sound.
type Player interface {
	Gulp(preySize int)
	Close()
}

// Silent is a Player that does nothing.
type Silent struct{}

func (Silent) Gulp(int) {}
func (Silent) Close()   {}

// SpeakerPlayer plays gulps on the system audio device.
type SpeakerPlayer struct {
	mu      sync.Mutex
	sr      beep.SampleRate
	cfg     config.AudioConfig
	minSize int
}

// NewSpeakerPlayer initializes the speaker. minSize is the smallest fish size
// and maps to the highest tone.
func NewSpeakerPlayer(cfg config.AudioConfig, minSize int) (*SpeakerPlayer, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &SpeakerPlayer{sr: sr, cfg: cfg, minSize: minSize}, nil
}

// Gulp plays a tone whose pitch drops as the prey gets bigger.
func (p *SpeakerPlayer) Gulp(preySize int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	freq := GulpFrequency(p.cfg.BaseFreq, p.minSize, preySize)
	s, err := GulpStreamer(p.sr, freq, time.Duration(p.cfg.GulpMillis)*time.Millisecond, p.cfg.Volume)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close stops playback and releases the device.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Clear()
	speaker.Close()
}

// GulpFrequency scales base down in proportion to preySize/minSize.
func GulpFrequency(base float64, minSize, preySize int) float64 {
	if preySize <= minSize || minSize <= 0 {
		return base
	}
	return base * float64(minSize) / float64(preySize)
}

// GulpStreamer builds a finite sine tone of duration d at freq, with volume
// adjusted by the given base-2 exponent.
func GulpStreamer(sr beep.SampleRate, freq float64, d time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("creating tone: %w", err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(d), sine),
		Base:     2,
		Volume:   volume,
	}, nil
}
