// Package tui plays a maze session in a terminal.
package tui

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/gdamore/tcell/v2"
)

const defaultTickInterval = 16 * time.Millisecond // ~60 FPS

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	endStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// Options tunes a Player.
type Options struct {
	TickInterval time.Duration
}

// Player drives a session from terminal input. Animation ticks are produced
// by a ticker that only runs while the view is moving.
type Player struct {
	screen       tcell.Screen
	session      *game.Session
	tickInterval time.Duration
}

func New(screen tcell.Screen, session *game.Session, opts *Options) *Player {
	p := &Player{
		screen:       screen,
		session:      session,
		tickInterval: defaultTickInterval,
	}
	if opts != nil && opts.TickInterval > 0 {
		p.tickInterval = opts.TickInterval
	}
	return p
}

// Run processes input until the user quits or ctx is done. The caller owns
// the screen and must call Fini on it.
func (p *Player) Run(ctx context.Context) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var ticker *time.Ticker
	var ticks <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	p.draw()
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok || !p.handle(ev) {
				return
			}

		case <-ticks:
			p.session.Tick()
		}

		switch animating := p.session.Mode().Animating(); {
		case animating && ticker == nil:
			ticker = time.NewTicker(p.tickInterval)
			ticks = ticker.C
		case !animating && ticker != nil:
			ticker.Stop()
			ticker, ticks = nil, nil
		}
		p.draw()
	}
}

// handle applies one terminal event and reports whether to keep running.
func (p *Player) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		act, cmd := translate(ev)
		switch act {
		case actionQuit:
			return false
		case actionCommand:
			p.session.Apply(cmd)
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *Player) draw() {
	p.screen.Clear()
	width, height := p.screen.Size()
	if height < 2 {
		p.screen.Show()
		return
	}

	if p.session.Mode() == game.Normal {
		p.drawFirstPerson(width, height-1)
	} else {
		p.drawOverhead(width, height-1)
	}
	drawText(p.screen, 0, height-1, width, statusLine(p.session), statusStyle)
	p.screen.Show()
}

func (p *Player) drawFirstPerson(width, height int) {
	for y, row := range firstPerson(p.session, width, height) {
		for x, r := range row {
			style := wallStyle
			switch r {
			case '.':
				style = floorStyle
			case 'E':
				style, r = endStyle, '█'
			}
			p.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (p *Player) drawOverhead(width, height int) {
	lines := overheadMap(p.session)
	for y, line := range lines {
		if y >= height {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			style := wallStyle
			switch r {
			case '>', '^', '<', 'v':
				style = playerStyle
			case 'E':
				style = endStyle
			case '·':
				style = floorStyle
			}
			p.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
