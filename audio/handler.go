package audio

import "github.com/lixenwraith/manege/entity"

// CollisionSounds plays a sound for every collision notification
type CollisionSounds struct {
	engine *Engine
}

// NewCollisionSounds binds a collision handler to engine
func NewCollisionSounds(engine *Engine) *CollisionSounds {
	return &CollisionSounds{engine: engine}
}

func (c *CollisionSounds) OnCollisionStart(a, b *entity.Entity) {
	c.engine.Play(SoundStart)
}

func (c *CollisionSounds) OnCollisionEnd(a, b *entity.Entity) {
	c.engine.Play(SoundEnd)
}

func (c *CollisionSounds) OnLongCollision(a, b *entity.Entity) {
	c.engine.Play(SoundLong)
}
