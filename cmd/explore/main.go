package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/beka-birhanu/vinom-explorer/config"
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/game/maze"
	"github.com/beka-birhanu/vinom-explorer/logger"
	"github.com/beka-birhanu/vinom-explorer/tui"
	"github.com/gdamore/tcell/v2"
)

const usage = "usage: explore WIDTH HEIGHT [SEED]"

var appLogger *logger.Logger

func fatal(format string, args ...interface{}) {
	appLogger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// parseArgs reads the maze size and optional seed from the command line.
func parseArgs(args []string) (width, height int, seed int64, err error) {
	if len(args) < 2 || len(args) > 3 {
		return 0, 0, 0, fmt.Errorf("expected 2 or 3 arguments, got %d", len(args))
	}
	if width, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("width %q is not an integer", args[0])
	}
	if height, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("height %q is not an integer", args[1])
	}
	if len(args) == 3 {
		if seed, err = strconv.ParseInt(args[2], 10, 64); err != nil {
			return 0, 0, 0, fmt.Errorf("seed %q is not an integer", args[2])
		}
	}
	return width, height, seed, nil
}

func main() {
	appLogger, _ = logger.New("EXPLORE", config.ColorMagenta, os.Stderr)

	width, height, seed, err := parseArgs(os.Args[1:])
	if err != nil {
		fatal("%v\n%s", err, usage)
	}

	settings, err := config.LoadEngine()
	if err != nil {
		fatal("Loading engine settings: %v", err)
	}

	m, err := maze.New(width, height, seed)
	if err != nil {
		fatal("Creating maze: %v", err)
	}

	session, err := game.NewSession(m, settings)
	if err != nil {
		fatal("Creating session: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal("Creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatal("Initializing screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	tui.New(screen, session, nil).Run(ctx)
	stop()
	screen.Fini()

	stats := session.Stats()
	if session.Finished() {
		appLogger.Info(fmt.Sprintf("Reached the end in %d moves (%d blocked, %d rotations, %d cells explored)",
			stats.Moves, stats.Blocked, stats.Rotations, session.VisitedCount()))
		return
	}
	appLogger.Info(fmt.Sprintf("Left the maze after %d moves, %d cells explored", stats.Moves, session.VisitedCount()))
}
