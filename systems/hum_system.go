package systems

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"ebiten-backrooms/ecs"
	"ebiten-backrooms/generation"
)

// HumSampleRate is the sample rate of the hum stream
const HumSampleRate = beep.SampleRate(44100)

// lightsForFullHum is the light count at which the hum reaches full volume
const lightsForFullHum = 8

// BuzzGenerator produces the mains hum of fluorescent tubes: a 50Hz tone
// with strong odd harmonics and a slow flicker
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz generator at the given mains frequency
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.2 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)
		sample += 0.05 * math.Sin(2*math.Pi*g.freq*5*t)

		flicker := 0.85 + 0.15*math.Sin(2*math.Pi*0.7*t)
		sample *= flicker * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// HumSystem plays the ambient hum, louder in rooms with more lights
type HumSystem struct {
	mu     sync.Mutex
	volume *effects.Volume
	base   float64
	level  float64
	lights int

	camera *CameraSystem
	player *audio.Player
}

// NewHumSystem creates a silent hum whose full volume is base (0 to 1)
func NewHumSystem(base float64, camera *CameraSystem) *HumSystem {
	return &HumSystem{
		volume: &effects.Volume{Streamer: NewBuzzGenerator(HumSampleRate, 50), Base: 2, Silent: true},
		base:   base,
		camera: camera,
	}
}

// Start begins playback through ctx. The context must run at HumSampleRate.
func (s *HumSystem) Start(ctx *audio.Context) error {
	player, err := ctx.NewPlayerF32(&streamReader{hum: s})
	if err != nil {
		return err
	}
	s.player = player
	s.player.Play()
	return nil
}

// Close stops playback
func (s *HumSystem) Close() {
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

// Update follows the light count of the room under the camera
func (s *HumSystem) Update(world *ecs.World, dt float64) {
	if s.camera == nil || world.Rooms() == nil {
		return
	}
	id := world.Rooms().RoomAt(s.camera.Cell(), generation.NoRoom)
	if id == generation.NoRoom {
		s.SetLights(0)
		return
	}
	s.SetLights(len(world.Rooms().Room(id).Lights))
}

// SetLights sets the hum level from a light count
func (s *HumSystem) SetLights(n int) {
	level := s.base * math.Min(float64(n)/lightsForFullHum, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = n
	s.level = level
	if level <= 0 {
		s.volume.Silent = true
		s.volume.Volume = 0
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(level)
}

// Level returns the current linear volume
func (s *HumSystem) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Stream fills samples from the hum; it is the audio thread's entry point
func (s *HumSystem) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume.Stream(samples)
}

// streamReader adapts the hum to the little-endian float32 stereo stream
// ebiten's audio players read
type streamReader struct {
	hum *HumSystem
	buf [][2]float64
}

func (r *streamReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	n, _ := r.hum.Stream(buf)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[i*8:], math.Float32bits(float32(buf[i][0])))
		binary.LittleEndian.PutUint32(p[i*8+4:], math.Float32bits(float32(buf[i][1])))
	}
	return n * 8, nil
}
