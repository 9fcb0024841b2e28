package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"

	"github.com/lixenwraith/manege/audio"
	"github.com/lixenwraith/manege/config"
	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/display"
	"github.com/lixenwraith/manege/engine"
	"github.com/lixenwraith/manege/parameter"
	"github.com/lixenwraith/manege/placement"
)

var (
	configFlag  = flag.String("config", "", "YAML config file, defaults built in")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/manege.log")
	profileFlag = flag.String("profile", "", "Profile to write on exit: cpu, mem")
	sizeFlag    = flag.Int("size", 0, "Strip size override")
	boundsFlag  = flag.String("bounds", "", "Bounds mode override: clip, wrap")
	muteFlag    = flag.Bool("mute", false, "Start with sound off")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	switch *profileFlag {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		fmt.Fprintf(os.Stderr, "Unknown profile %q\n", *profileFlag)
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "manege: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *sizeFlag != 0 {
		cfg.Size = *sizeFlag
	}
	if *boundsFlag != "" {
		cfg.Bounds = *boundsFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ec, err := cfg.Engine()
	if err != nil {
		return err
	}
	opts := []engine.Option{engine.WithLogger(log.Default())}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithRandom(placement.NewXorShift(cfg.Seed)))
	}
	world, err := engine.NewWorld(ec, opts...)
	if err != nil {
		return err
	}
	world.SetBlendMode(cfg.BlendMode())

	named, err := cfg.Spawn(world)
	if err != nil {
		return err
	}
	player, enemy := named["player"], named["enemy"]
	if player == nil || enemy == nil {
		return fmt.Errorf("config must name a player and an enemy entity")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashHook(screen.Fini)

	strip := display.NewStrip(screen, 1, 1)

	sound := audio.NewEngine(&audio.Config{
		Enabled:    cfg.Audio.Enabled && !*muteFlag,
		Volume:     cfg.Audio.Volume,
		SampleRate: parameter.AudioSampleRate,
	})
	if err := sound.Start(); err != nil {
		log.Printf("audio: %v", err)
	}
	defer sound.Stop()
	if sound.IsSilent() {
		log.Printf("audio: no output device, running silent")
	}

	game := newGame(world, strip, player, enemy, sound)
	if err := world.Register(game); err != nil {
		return err
	}
	if err := world.Register(audio.NewCollisionSounds(sound)); err != nil {
		return err
	}

	scheduler := engine.NewClockScheduler(world, game, cfg.TickInterval())
	scheduler.SetTickHook(game.Tick)

	world.RunSafe(world.Start)
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("main: %d cells, %s bounds, %d entities", cfg.Size, cfg.Bounds, len(cfg.Entities))

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !handleKey(game, sound, ev) {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
	return nil
}

// handleKey applies one key press, false quits
func handleKey(g *Game, sound *audio.Engine, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		g.Steer(-steerStep)
	case tcell.KeyRight:
		g.Steer(steerStep)
	case tcell.KeyDown:
		g.Stop()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			g.Stop()
		case 'p':
			g.TogglePause()
		case 'm':
			on := sound.ToggleMute()
			log.Printf("audio: sound on=%v", on)
		}
	}
	return true
}
