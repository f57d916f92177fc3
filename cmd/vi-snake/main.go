package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/highscore"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/modes"
	"github.com/lixenwraith/vi-snake/render"
	"github.com/lixenwraith/vi-snake/replay"
)

var (
	configFlag     = flag.String("config", config.DefaultPath, "Settings file, created with defaults when missing")
	scoresFlag     = flag.String("scores", highscore.DefaultPath, "High score file")
	debugFlag      = flag.Bool("debug", false, "Write logs to logs/vi-snake.log")
	seedFlag       = flag.Int64("seed", 0, "Game seed, 0 picks one from the clock")
	recordFlag     = flag.String("record", "", "Record every session to this file")
	replayFlag     = flag.String("replay", "", "Re-simulate a recording and compare scores")
	listScoresFlag = flag.Bool("list-scores", false, "Print the high score list and exit")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	defer guardCrash()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	switch {
	case *listScoresFlag:
		return listScores(*scoresFlag)
	case *replayFlag != "":
		return verifyReplay(*replayFlag)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "Invalid settings in %s: %v\n", *configFlag, verr)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		}
		return 1
	}

	keys, err := input.LoadKeyMap(cfg.Keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load key bindings: %v\n", err)
		return 1
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "vi-snake needs an interactive terminal")
		return 1
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, err := engine.NewSession(cfg.Game, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	log.Printf("game: seed %d, %dx%d grid, length %d, %d tps",
		seed, cfg.Game.GridSize, cfg.Game.GridSize, cfg.Game.StartLength, cfg.Game.TicksPerSecond)
	session.SetScoreListener(func(score int) {
		log.Printf("game: score %d", score)
	})

	if *recordFlag != "" {
		recorder := replay.NewRecorder()
		session.SetRecorder(recorder)
		// Runs after the scheduler has stopped
		defer func() {
			session.CloseRecording()
			if err := recorder.Save(*recordFlag); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to save recording: %v\n", err)
			}
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Crash handler for engine goroutines restores the terminal first
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sound := audio.NewSoundManager(cfg.Audio)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			log.Printf("audio: init failed: %v (continuing without audio)", err)
		}
		defer sound.Cleanup()
	}

	clock := engine.NewPausableClock(nil)
	scheduler := engine.NewClockScheduler(session, clock, cfg.Game.TicksPerSecond, &gameListener{screen: screen, sound: sound})
	scheduler.Start()
	defer scheduler.Stop()

	store := highscore.NewStore(*scoresFlag)
	handler := modes.NewInputHandler(keys, scheduler, sound, store)
	renderer := render.NewTerminalRenderer(screen)

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if !handler.HandleEvent(ev) {
				log.Printf("game: exit after %d ticks, play time %s", scheduler.TickCount(), scheduler.PlayTime().Round(time.Second))
				return 0
			}
		case <-frameTicker.C:
		}

		snap := session.Snapshot()
		if snap.State == engine.StateOver && handler.Dialog() == nil {
			handler.OpenDialog(snap.Score, snap.Outcome)
		}

		layout := renderer.RenderFrame(render.Frame{
			Snapshot: snap,
			PlayTime: scheduler.PlayTime(),
			Muted:    sound.Muted(),
			Dialog:   handler.Dialog(),
		})
		handler.SetLayout(layout)
	}
}

// guardCrash restores the terminal and reports a panic on the main goroutine
// Must be deferred directly so recover sees the panic
func guardCrash() {
	if r := recover(); r != nil {
		core.HandleCrash(r)
	}
}

func listScores(path string) int {
	entries, err := highscore.NewStore(path).List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read high scores: %v\n", err)
		return 1
	}
	fmt.Print(highscore.Format(entries))
	return 0
}

func verifyReplay(path string) int {
	rec, err := replay.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	results, err := replay.Verify(rec)
	for _, res := range results {
		fmt.Println(res)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	for _, res := range results {
		if !res.Match() {
			return 2
		}
	}
	return 0
}
