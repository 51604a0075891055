package main

import (
	"fmt"
	"time"

	"github.com/faiface/beep/speaker"

	"github.com/verte-zerg/tapmorse/internal/audio"
	"github.com/verte-zerg/tapmorse/internal/model"
)

// startTone opens the speaker and starts an endless gated tone on it.
func startTone(cfg model.Config) (*audio.Tone, func(), error) {
	sr := audio.DefaultSampleRate
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, nil, fmt.Errorf("failed to open speaker: %w", err)
	}
	tone := audio.NewTone(sr, cfg.ToneFrequency, cfg.Volume)
	speaker.Play(tone.Streamer())
	return tone, speaker.Close, nil
}
