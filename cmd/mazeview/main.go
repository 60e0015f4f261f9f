// Command mazeview draws a maze in the terminal and walks a player to clicked cells.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/gdamore/tcell/v2"
)

const frame = 33 * time.Millisecond

func main() {
	width := flag.Int("width", 12, "maze width in cells")
	height := flag.Int("height", 8, "maze height in cells")
	seed := flag.Int64("seed", 0, "generator seed, 0 for time based")
	speed := flag.Float64("speed", 6, "player speed in cells per second")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	v, err := newViewer(screen, maze.NewGenerator(maze.WithSeed(*seed)), *width, *height, *speed)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to generate maze: %v\n", err)
		os.Exit(1)
	}

	run(screen, v)
	screen.Fini()
}

func run(screen tcell.Screen, v *viewer) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handle(ev) {
				return
			}
			v.draw()
		case <-ticker.C:
			v.tick(frame)
			v.draw()
		}
	}
}
