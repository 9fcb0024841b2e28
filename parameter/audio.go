package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length, trades latency for underruns
	AudioBufferDuration = 100 * time.Millisecond

	// AudioQueueSize bounds pending play requests, extra requests are dropped
	AudioQueueSize = 32
)

// Collision start: short rising blip
const (
	StartSoundDuration = 90 * time.Millisecond
	StartSoundAttack   = 5 * time.Millisecond
	StartSoundRelease  = 40 * time.Millisecond
	StartSoundFreq     = 660.0
)

// Collision end: soft falling blip
const (
	EndSoundDuration = 70 * time.Millisecond
	EndSoundAttack   = 5 * time.Millisecond
	EndSoundRelease  = 50 * time.Millisecond
	EndSoundFreq     = 440.0
)

// Long collision: two-note chime
const (
	LongSoundAttack        = 5 * time.Millisecond
	LongSoundNote1Duration = 100 * time.Millisecond
	LongSoundNote1Release  = 40 * time.Millisecond
	LongSoundNote1Freq     = 987.77
	LongSoundNote2Duration = 300 * time.Millisecond
	LongSoundNote2Release  = 250 * time.Millisecond
	LongSoundNote2Freq     = 1318.51
)

// Lose: descending pair of pure tones
const (
	LoseSoundNoteDuration = 180 * time.Millisecond
	LoseSoundAttack       = 10 * time.Millisecond
	LoseSoundRelease      = 120 * time.Millisecond
	LoseSoundFreqHigh     = 392.0
	LoseSoundFreqLow      = 261.63
)
