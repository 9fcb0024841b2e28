package config

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/engine"
	"github.com/lixenwraith/manege/entity"
)

// Spawn creates the configured entities in w, in file order
// Named entities are returned for the game script to find
func (c *Config) Spawn(w *engine.World) (map[string]*entity.Entity, error) {
	named := make(map[string]*entity.Entity, len(c.Entities))
	for i, ec := range c.Entities {
		color, err := core.ParseHex(ec.Color)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %d", i)
		}

		e := w.CreateEntity(color, ec.Position)
		e.Speed = ec.Speed
		e.ZIndex = ec.ZIndex
		e.Hidden = ec.Hidden
		if ec.Width > 0 {
			e.SetWidth(ec.Width)
		}
		if ec.Opacity != nil {
			e.Opacity = *ec.Opacity
			e.ClampOpacity()
		}

		if ec.Name != "" {
			named[ec.Name] = e
		}
	}
	return named, nil
}
