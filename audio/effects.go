package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/manege/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a wave of the given length
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s, cutting it off after duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(0, total-att-rel),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; effects.Volume works in log2 so 0 must be silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// createStartSound is a short sine blip
func createStartSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(parameter.StartSoundFreq, parameter.StartSoundDuration, WaveSine, rate)
	return NewEnvelope(osc, parameter.StartSoundDuration, parameter.StartSoundAttack, parameter.StartSoundRelease, rate)
}

// createEndSound is a lower, softer triangle blip
func createEndSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(parameter.EndSoundFreq, parameter.EndSoundDuration, WaveTriangle, rate)
	shaped := NewEnvelope(osc, parameter.EndSoundDuration, parameter.EndSoundAttack, parameter.EndSoundRelease, rate)
	return newVolume(shaped, 0.6)
}

// createLongSound is a two-note chime
func createLongSound(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(parameter.LongSoundNote1Freq, parameter.LongSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.LongSoundNote1Duration, parameter.LongSoundAttack, parameter.LongSoundNote1Release, rate)

	n2 := NewOscillator(parameter.LongSoundNote2Freq, parameter.LongSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.LongSoundNote2Duration, parameter.LongSoundAttack, parameter.LongSoundNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), 0.4)
}

// createLoseSound layers a falling pair of pure tones
func createLoseSound(rate beep.SampleRate) beep.Streamer {
	var parts []beep.Streamer
	for _, freq := range []float64{parameter.LoseSoundFreqHigh, parameter.LoseSoundFreqLow} {
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			// Frequency above Nyquist for this rate
			continue
		}
		taken := beep.Take(rate.N(parameter.LoseSoundNoteDuration), tone)
		parts = append(parts, NewEnvelope(taken, parameter.LoseSoundNoteDuration, parameter.LoseSoundAttack, parameter.LoseSoundRelease, rate))
	}
	if len(parts) == 0 {
		return beep.Silence(rate.N(parameter.LoseSoundNoteDuration))
	}
	return beep.Seq(parts...)
}

// generate returns the unity-gain stream for st at rate
func generate(st SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case SoundStart:
		return createStartSound(rate)
	case SoundEnd:
		return createEndSound(rate)
	case SoundLong:
		return createLongSound(rate)
	case SoundLose:
		return createLoseSound(rate)
	default:
		return nil
	}
}
