// Package audio plays the eclipse chime. Synthesis goes through beep
// streamers; output goes through a portaudio stream. When either side
// fails the chime goes silent for the rest of the session.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/eclipsehunter/internal/sim"
)

const (
	SampleRate = beep.SampleRate(22050)
	BufferSize = 512

	ChimeFreq     = 523.0
	ChimeDuration = 200 * time.Millisecond
)

// tone is a sine that fades linearly from full level to zero.
type tone struct {
	freq     float64
	rate     beep.SampleRate
	position int
	total    int
}

// Tone returns a sine streamer of the given frequency and length with a
// linear fade-out.
func Tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, rate: rate, total: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		fade := 1 - float64(t.position)/float64(t.total)
		v := fade * math.Sin(2*math.Pi*t.freq*float64(t.position)/float64(t.rate))
		samples[i][0] = v
		samples[i][1] = v
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Chime mixes eclipse tones into a portaudio output stream.
type Chime struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	stream *portaudio.Stream
	buf    [][2]float64
	volume float64
	active bool
}

func NewChime(volume float64) *Chime {
	return &Chime{
		mixer:  &beep.Mixer{},
		buf:    make([][2]float64, BufferSize),
		volume: volume,
	}
}

// Start opens the default output device. On failure the chime stays
// silent; the error is logged and returned for callers that care.
func (c *Chime) Start() error {
	if err := portaudio.Initialize(); err != nil {
		log.Printf("audio: init: %v", err)
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(SampleRate), BufferSize, c.process)
	if err != nil {
		log.Printf("audio: open stream: %v", err)
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		log.Printf("audio: start stream: %v", err)
		stream.Close()
		portaudio.Terminate()
		return err
	}

	c.mu.Lock()
	c.stream = stream
	c.active = true
	c.mu.Unlock()
	return nil
}

func (c *Chime) Stop() {
	c.mu.Lock()
	stream := c.stream
	wasActive := c.active
	c.stream = nil
	c.active = false
	c.mixer.Clear()
	c.mu.Unlock()

	if stream != nil {
		stream.Stop()
		stream.Close()
	}
	if wasActive {
		portaudio.Terminate()
	}
}

func (c *Chime) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Play queues one chime. It does nothing while the chime is silent.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.mixer.Add(c.voice())
}

func (c *Chime) OnEclipse(sim.Event) { c.Play() }

func (c *Chime) voice() beep.Streamer {
	t := Tone(ChimeFreq, ChimeDuration, SampleRate)
	if c.volume <= 0 {
		return &effects.Volume{Streamer: t, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: t, Base: 2, Volume: math.Log2(c.volume)}
}

// process is the portaudio callback.
func (c *Chime) process(out [][]float32) {
	n := len(out[0])
	if n > len(c.buf) {
		c.buf = make([][2]float64, n)
	}
	buf := c.buf[:n]
	for i := range buf {
		buf[i] = [2]float64{}
	}

	c.mu.Lock()
	c.mixer.Stream(buf)
	c.mu.Unlock()

	for i := range buf {
		out[0][i] = float32(buf[i][0])
		out[1][i] = float32(buf[i][1])
	}
}
