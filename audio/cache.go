package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// soundCache stores pre-rendered unity-gain buffers per sound type
type soundCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  [soundTypeCount]*beep.Buffer
}

func newSoundCache(format beep.Format) *soundCache {
	return &soundCache{format: format}
}

// get returns the cached buffer or renders it on demand
func (c *soundCache) get(st SoundType) *beep.Buffer {
	if st < 0 || st >= soundTypeCount {
		return nil
	}

	c.mu.RLock()
	buf := c.store[st]
	c.mu.RUnlock()
	if buf != nil {
		return buf
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store[st] != nil {
		return c.store[st]
	}

	buf = beep.NewBuffer(c.format)
	buf.Append(generate(st, c.format.SampleRate))
	c.store[st] = buf
	return buf
}

// preload renders every sound so the first collision does not stall
func (c *soundCache) preload() {
	for st := SoundType(0); st < soundTypeCount; st++ {
		c.get(st)
	}
}
