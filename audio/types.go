package audio

import "errors"

// SoundType identifies a collision sound
type SoundType int

const (
	SoundStart SoundType = iota
	SoundEnd
	SoundLong
	SoundLose
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"start", "end", "long", "lose"}

func (st SoundType) String() string {
	if st < 0 || st >= soundTypeCount {
		return "unknown"
	}
	return soundNames[st]
}

var (
	ErrAlreadyRunning = errors.New("audio engine already running")
	ErrUnknownSound   = errors.New("unknown sound type")
)

// Config controls the audio engine
type Config struct {
	Enabled    bool
	Volume     float64 // 0.0 - 1.0
	SampleRate int
}

// DefaultConfig returns an enabled engine at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		Volume:     0.5,
		SampleRate: 44100,
	}
}
