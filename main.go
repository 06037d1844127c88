package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gridlife/model"
	"github.com/sheikhrachel/gridlife/render"
	"github.com/sheikhrachel/gridlife/utils"
)

const configFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if errors.Is(err, os.ErrNotExist) {
		config = utils.DefaultConfig()
	} else if err != nil {
		log.Fatalf("loading %s: %v", configFile, err)
	}
	config.Bind(flag.CommandLine)
	flag.Parse()

	if err = config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, closer, err := newLogger(config)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	g, err := initializeGame(config, logger)
	if err != nil {
		log.Fatal(err)
	}

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if config.Headless {
		err = runHeadless(g, config, os.Stdout, sigChan)
	} else {
		err = runTerminal(g, config, sigChan)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Final stats: %d rounds, %d starts in %.1f seconds | Avg Pop: %.1f | Peak: %d\n",
		g.stats.TotalRounds, g.stats.Restarts, time.Since(g.stats.StartTime).Seconds(),
		g.stats.AveragePopulation, g.stats.PeakPopulation)
}

// runHeadless drives the scheduler from a ticker and prints a status line
// per round, then the final board.
func runHeadless(g *game, config utils.Config, out io.Writer, stop <-chan os.Signal) error {
	displayGameInfo(out, config, g.board)
	g.scheduler.Subscribe(roundStatusPrinter(out, g))

	if err := g.scheduler.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	var clock frameClock
	clock.delta(time.Now())
	for {
		select {
		case <-stop:
			fmt.Fprintln(out, "\nShutting down gracefully...")
			return model.NewTextRenderer().Display(out, g.board)
		case now := <-ticker.C:
			g.scheduler.Tick(clock.delta(now))
			done, err := g.afterTick(config)
			if err != nil {
				return err
			}
			if done {
				fmt.Fprintf(out, "\nReached maximum rounds limit (%d)\n", config.MaxRounds)
				return model.NewTextRenderer().Display(out, g.board)
			}
		}
	}
}

// runTerminal draws the board with tcell. Space stops or starts a round, r
// starts a new one, q or Esc quits, and clicking a cell logs its position.
func runTerminal(g *game, config utils.Config, stop <-chan os.Signal) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runTerminal] creating screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runTerminal] initializing screen")
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()

	renderer := render.NewScreen(screen, g.board)
	probe := render.NewProbe(g.board.Bounds())
	g.scheduler.Subscribe(renderer.Observe)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	if err = g.scheduler.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	var clock frameClock
	clock.delta(time.Now())
	for {
		select {
		case <-stop:
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ' && g.scheduler.Running():
					g.scheduler.Stop()
				case ev.Rune() == ' ' || ev.Rune() == 'r':
					if err = g.scheduler.Start(); err != nil {
						return err
					}
				}
			case *tcell.EventResize:
				screen.Sync()
				if err = renderer.Observe(g.last); err != nil {
					g.logger.Printf("redraw after resize: %v", err)
				}
			case *tcell.EventMouse:
				if sx, sy, tile, ok := probe.Click(ev); ok {
					g.logger.Printf("mouse=(%d,%d) tile=%v", sx, sy, tile)
				}
			}
		case now := <-ticker.C:
			g.scheduler.Tick(clock.delta(now))
			done, err := g.afterTick(config)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}
