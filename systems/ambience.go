package systems

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// Ambience loops a recorded background track under the hum
type Ambience struct {
	player *audio.Player
	file   *os.File
	volume float64
}

// NewAmbience creates a stopped ambience track at the given volume
func NewAmbience(volume float64) *Ambience {
	return &Ambience{volume: volume}
}

type ambienceStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAmbience picks the decoder from the file extension
func decodeAmbience(path string, sampleRate int, r io.Reader) (ambienceStream, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	}
	return nil, fmt.Errorf("unsupported audio format: %s", path)
}

// Play starts looping the track at path, replacing any track already playing
func (a *Ambience) Play(ctx *audio.Context, path string) error {
	a.Stop()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ambience: %w", err)
	}
	stream, err := decodeAmbience(path, ctx.SampleRate(), file)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to decode ambience: %w", err)
	}

	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create ambience player: %w", err)
	}

	a.file = file
	a.player = player
	a.player.SetVolume(a.volume)
	a.player.Play()
	return nil
}

// Stop ends playback and closes the track
func (a *Ambience) Stop() {
	if a.player != nil {
		a.player.Close()
		a.player = nil
	}
	if a.file != nil {
		a.file.Close()
		a.file = nil
	}
}

// Playing reports whether a track is playing
func (a *Ambience) Playing() bool {
	return a.player != nil && a.player.IsPlaying()
}

// SetVolume sets the track volume in [0, 1]
func (a *Ambience) SetVolume(volume float64) {
	a.volume = volume
	if a.player != nil {
		a.player.SetVolume(volume)
	}
}

// Volume returns the track volume
func (a *Ambience) Volume() float64 {
	return a.volume
}
