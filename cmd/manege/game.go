package main

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/manege/animation"
	"github.com/lixenwraith/manege/audio"
	"github.com/lixenwraith/manege/collision"
	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/display"
	"github.com/lixenwraith/manege/engine"
	"github.com/lixenwraith/manege/entity"
	"github.com/lixenwraith/manege/parameter"
)

const (
	maxPlayerSpeed = 20.0
	steerStep      = 4.0
	enemySpeed     = 19.0
	loseDelay      = time.Second
)

// statusSetter is implemented by drivers with a text line
type statusSetter interface {
	SetStatus(text string)
}

// Game is the chase: the player steers, the enemy wanders on noise
// Touching the enemy blacks out the strip and restarts the round
type Game struct {
	world *engine.World
	out   display.Driver
	sound *audio.Engine

	player, enemy           *entity.Entity
	playerStart, enemyStart float64

	// Player speed set by input, read by the tick hook; guarded by the world lock
	steer float64

	resetDelay time.Duration
	losing     atomic.Bool
	blackout   atomic.Bool
	rounds     atomic.Int64
}

func newGame(w *engine.World, out display.Driver, player, enemy *entity.Entity, sound *audio.Engine) *Game {
	return &Game{
		world:       w,
		out:         out,
		sound:       sound,
		player:      player,
		enemy:       enemy,
		playerStart: player.Position,
		enemyStart:  enemy.Position,
		resetDelay:  loseDelay,
	}
}

// Tick runs under the world lock before each simulation step
func (g *Game) Tick(w *engine.World) {
	g.player.Speed = g.steer
	g.enemy.Speed = w.NoiseA(-enemySpeed, enemySpeed, 1)
}

// Steer nudges the player speed by delta, clamped to the speed limit
func (g *Game) Steer(delta float64) {
	g.world.RunSafe(func() {
		g.steer = min(maxPlayerSpeed, max(-maxPlayerSpeed, g.steer+delta))
	})
}

// Stop zeroes the player speed
func (g *Game) Stop() {
	g.world.RunSafe(func() {
		g.steer = 0
	})
}

// TogglePause pauses or resumes unless a round reset is in progress
func (g *Game) TogglePause() {
	if g.losing.Load() {
		return
	}
	g.world.RunSafe(func() {
		if g.world.Running() {
			g.world.Pause()
		} else {
			g.world.Resume()
		}
	})
}

// Show forwards frames to the output, all black during a lost round
func (g *Game) Show(pixels []core.RGB) error {
	if s, ok := g.out.(statusSetter); ok {
		s.SetStatus(g.statusLine())
	}
	if g.blackout.Load() {
		black := make([]core.RGB, len(pixels))
		return g.out.Show(black)
	}
	return g.out.Show(pixels)
}

func (g *Game) statusLine() string {
	state := "running"
	if !g.world.Running() {
		state = "paused"
	}
	return state + "  ←/→ steer  space stop  p pause  m mute  q quit  " + g.world.Status().Summary()
}

// OnCollisionStart ends the round when the player meets the enemy
func (g *Game) OnCollisionStart(a, b *entity.Entity) {
	if !collision.SameEntityPair(a.ID, b.ID, g.player.ID, g.enemy.ID) {
		return
	}
	if !g.losing.CompareAndSwap(false, true) {
		return
	}
	core.Go(g.lose)
}

func (g *Game) OnCollisionEnd(a, b *entity.Entity) {}

// OnLongCollision blinks both entities
func (g *Game) OnLongCollision(a, b *entity.Entity) {
	g.world.RunSafe(func() {
		for _, e := range []*entity.Entity{a, b} {
			if _, ok := g.world.Entity(e.ID); !ok {
				continue
			}
			if err := g.world.Animate(e, animation.Blink, 0, parameter.DefaultAnimationAmplitude, 0); err != nil {
				log.Printf("game: blink failed: %v", err)
			}
		}
	})
}

// lose pauses, blacks out, puts both entities back, and resumes
func (g *Game) lose() {
	defer g.losing.Store(false)

	g.world.RunSafe(g.world.Pause)
	g.blackout.Store(true)
	if g.sound != nil {
		g.sound.Play(audio.SoundLose)
	}
	log.Printf("game: round %d lost", g.rounds.Add(1))

	time.Sleep(g.resetDelay)
	g.world.RunSafe(func() {
		g.world.StartPaused()
		g.player.Position = g.playerStart
		g.enemy.Position = g.enemyStart
		g.steer = 0
	})
	g.blackout.Store(false)

	time.Sleep(g.resetDelay)
	g.world.RunSafe(g.world.Resume)
}

// Rounds returns how many rounds were lost
func (g *Game) Rounds() int64 {
	return g.rounds.Load()
}
