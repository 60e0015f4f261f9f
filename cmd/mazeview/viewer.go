package main

import (
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/movement"
	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"
)

// viewer renders one maze and walks a player through it along picked routes.
type viewer struct {
	screen        tcell.Screen
	generator     *maze.Generator
	width, height int
	speed         float64 // cells per second

	maze    *maze.Maze
	router  *maze.Router
	machine *movement.Machine
	route   maze.Route
	pos     maze.Vec3
	message string
}

func newViewer(screen tcell.Screen, g *maze.Generator, width, height int, speed float64) (*viewer, error) {
	v := &viewer{
		screen:    screen,
		generator: g,
		width:     width,
		height:    height,
		speed:     speed,
	}
	if err := v.regenerate(); err != nil {
		return nil, err
	}
	return v, nil
}

// regenerate replaces the maze and puts the player back on the entrance.
func (v *viewer) regenerate() error {
	m, err := v.generator.Generate(v.width, v.height)
	if err != nil {
		return err
	}

	entrance, err := m.Cell(m.Entrance())
	if err != nil {
		return err
	}

	v.maze = m
	v.router = maze.NewRouter(m)
	v.machine = movement.New()
	v.route = nil
	v.pos = entrance.Center
	v.message = gotext.Get("Seed %d. Click a cell to walk there.", v.generator.Seed())
	return nil
}

// handle processes one terminal event. It returns false when the viewer should quit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return v.key(ev.Rune())
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			v.click(x, y)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) key(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case 'r', 'R':
		if err := v.regenerate(); err != nil {
			v.message = gotext.Get("Could not generate maze: %s", err)
		}
	}
	return true
}

// click routes the player from the cell under it to the cell at screen position (sx, sy).
func (v *viewer) click(sx, sy int) {
	point, ok := pickPoint(v.maze, sx, sy)
	if !ok {
		return
	}
	destination, err := v.maze.CellAt(point)
	if err != nil {
		return
	}

	start, err := v.maze.CellAt(v.pos)
	if err != nil {
		v.message = gotext.Get("Player is off the maze: %s", err)
		return
	}

	route, err := v.router.Route(start, destination)
	if err != nil {
		v.message = gotext.Get("No route to %s: %s", destination, err)
		return
	}

	v.route = route
	v.machine.Load(route)
	v.message = gotext.Get("Walking %d cells to %s.", len(route), destination)
}

// tick advances the player by one frame of dt.
func (v *viewer) tick(dt time.Duration) {
	w, ok := v.machine.Advance(v.pos)
	if !ok {
		if v.route != nil {
			v.route = nil
			v.message = gotext.Get("Arrived.")
		}
		return
	}
	v.pos = step(v.pos, w.Target, v.speed*dt.Seconds())
}

func (v *viewer) draw() {
	v.screen.Clear()

	wall := tcell.StyleDefault.Foreground(tcell.ColorGray)
	mark := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	player := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	text := tcell.StyleDefault

	for dy, line := range strings.Split(strings.TrimRight(v.maze.Render(v.route), "\n"), "\n") {
		for dx, r := range line {
			style := wall
			if r == 'S' || r == 'E' || r == '*' {
				style = mark
			}
			v.screen.SetContent(originX+dx, originY+dy, r, nil, style)
		}
	}

	px, py := screenOf(v.maze, v.pos)
	v.screen.SetContent(px, py, '@', nil, player)

	statusY := originY + v.height*cellRows + 2
	v.drawText(originX, statusY, text, v.message)
	v.drawText(originX, statusY+1, text, gotext.Get("State: %s  Remaining: %d", v.machine.State(), v.machine.Remaining()))
	v.drawText(originX, statusY+2, text, gotext.Get("r: new maze  q: quit"))

	v.screen.Show()
}

func (v *viewer) drawText(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
