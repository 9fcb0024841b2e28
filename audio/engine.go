package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/parameter"
)

// Output is the sink sounds are played on
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

// speakerOutput plays through the system speaker
type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerOutput) Close() { speaker.Close() }

// Engine plays collision sounds without blocking the caller
// When the output cannot be opened the engine runs silently
type Engine struct {
	config *Config
	output Output
	format beep.Format
	cache  *soundCache

	queue chan SoundType
	stop  chan struct{}
	wg    sync.WaitGroup

	mu sync.RWMutex // protects config.Volume

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewEngine creates an engine on the system speaker, nil cfg uses the defaults
func NewEngine(cfg *Config) *Engine {
	return NewEngineWithOutput(cfg, speakerOutput{})
}

// NewEngineWithOutput creates an engine on a custom output
func NewEngineWithOutput(cfg *Config, out Output) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(cfg.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	e := &Engine{
		config: cfg,
		output: out,
		format: format,
		cache:  newSoundCache(format),
		queue:  make(chan SoundType, parameter.AudioQueueSize),
	}
	e.muted.Store(!cfg.Enabled)
	return e
}

// Start opens the output and launches the playback worker
// An output failure switches to silent mode and is not an error
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	rate := e.format.SampleRate
	if err := e.output.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		e.silentMode.Store(true)
		return nil
	}
	e.cache.preload()

	e.stop = make(chan struct{})
	e.wg.Add(1)
	core.Go(e.worker)
	return nil
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for {
		select {
		case <-e.stop:
			return
		case st := <-e.queue:
			buf := e.cache.get(st)
			if buf == nil {
				continue
			}
			e.mu.RLock()
			vol := e.config.Volume
			e.mu.RUnlock()
			e.output.Play(newVolume(buf.Streamer(0, buf.Len()), vol))
			e.played.Add(1)
		}
	}
}

// Stop halts the worker and closes the output
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if e.silentMode.Load() {
		return
	}
	close(e.stop)
	e.wg.Wait()
	e.output.Close()
}

// Play queues a sound, returns false when muted, silent or the queue is full
func (e *Engine) Play(st SoundType) bool {
	if !e.IsEnabled() {
		return false
	}
	if st < 0 || st >= soundTypeCount {
		return false
	}
	select {
	case e.queue <- st:
		return true
	default:
		e.dropped.Add(1)
		return false
	}
}

// ToggleMute flips mute, returns true if sound is now on
func (e *Engine) ToggleMute() bool {
	muted := !e.muted.Load()
	e.muted.Store(muted)
	return !muted
}

// IsMuted returns current mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// IsEnabled returns true if running, unmuted and attached to an output
func (e *Engine) IsEnabled() bool {
	return e.running.Load() && !e.muted.Load() && !e.silentMode.Load()
}

// IsSilent reports whether the output failed to open
func (e *Engine) IsSilent() bool {
	return e.silentMode.Load()
}

// SetVolume updates the master volume (0.0-1.0)
func (e *Engine) SetVolume(vol float64) {
	vol = min(1, max(0, vol))
	e.mu.Lock()
	e.config.Volume = vol
	e.mu.Unlock()
}

// Stats returns played and dropped counts
func (e *Engine) Stats() (played, dropped uint64) {
	return e.played.Load(), e.dropped.Load()
}
