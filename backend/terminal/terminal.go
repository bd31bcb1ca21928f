// Package terminal renders a Board's framebuffer to a tcell terminal
// screen, using shade characters (█▓▒░) to approximate DMG greyscale, and
// forwards keyboard input to the joypad.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kjhall/go-dmgboy/goboy"
	"github.com/kjhall/go-dmgboy/goboy/memory"
	"github.com/kjhall/go-dmgboy/goboy/video"
)

const (
	// Since terminal characters are taller than wide, scale the width more
	// to maintain an approximate aspect ratio.
	scaleX = 2
	scaleY = 1

	// Frame timing (Game Boy runs at ~59.7 FPS).
	frameTime = time.Second / 60

	// tcell reports key-down only; held keys repeat as new EventKeys rather
	// than via a separate key-up event. Auto-release each button after one
	// frame so a tapped key reads as a single press instead of sticking down.
	pressDuration = frameTime
)

// Characters used to represent the four DMG shades, darkest to lightest.
var shadeChars = []rune{'█', '▓', '▒', '░'}

// keymap is the fixed key layout: arrows for D-pad and Enter for Start.
// Z/X (A/B) and 'a' (Select) are in runeKeymap; Shift+Right also presses
// Select and is checked in handleKey before this table.
var keymap = map[tcell.Key]memory.Button{
	tcell.KeyUp:    memory.ButtonUp,
	tcell.KeyDown:  memory.ButtonDown,
	tcell.KeyLeft:  memory.ButtonLeft,
	tcell.KeyRight: memory.ButtonRight,
	tcell.KeyEnter: memory.ButtonStart,
}

var runeKeymap = map[rune]memory.Button{
	'z': memory.ButtonA,
	'x': memory.ButtonB,
	'a': memory.ButtonSelect,
}

// Renderer drives a Board against a tcell screen until Escape is pressed or
// the process receives SIGINT/SIGTERM.
type Renderer struct {
	screen  tcell.Screen
	board   *goboy.Board
	running bool
}

// New initializes the terminal screen and wraps board for rendering.
func New(board *goboy.Board) (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	return &Renderer{screen: screen, board: board, running: true}, nil
}

// Run drives the emulator at 60Hz, rendering each completed frame, until the
// user quits.
func (r *Renderer) Run() error {
	defer func() {
		slog.Info("terminal backend exiting")
		r.screen.Fini()
	}()

	r.screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	r.screen.Clear()

	go r.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for r.running {
		select {
		case <-ticker.C:
			r.board.RunToNextFrame()
			r.render()
			r.screen.Show()
		case <-signals:
			r.running = false
			slog.Info("received signal to stop")
			return nil
		}
	}

	return nil
}

func (r *Renderer) handleInput() {
	for r.running {
		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			r.handleKey(ev)
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
}

func (r *Renderer) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		r.running = false
		return
	}
	if ev.Key() == tcell.KeyRight && ev.Modifiers()&tcell.ModShift != 0 {
		r.pressAndRelease(memory.ButtonSelect)
		return
	}
	if btn, ok := keymap[ev.Key()]; ok {
		r.pressAndRelease(btn)
		return
	}
	if ev.Key() == tcell.KeyRune {
		if btn, ok := runeKeymap[ev.Rune()]; ok {
			r.pressAndRelease(btn)
		}
	}
}

// pressAndRelease presses btn and schedules its release, since tcell never
// delivers a key-up event to pair with the press.
func (r *Renderer) pressAndRelease(btn memory.Button) {
	r.board.ButtonPressed(btn)
	time.AfterFunc(pressDuration, func() {
		r.board.ButtonReleased(btn)
	})
}

func (r *Renderer) render() {
	fb := r.board.Frame()
	r.screen.Clear()

	for y := 0; y < video.Height; y++ {
		for x := 0; x < video.Width; x++ {
			shade := shadeIndex(fb.At(x, y))
			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			char := shadeChars[shade]

			screenX := x * scaleX
			screenY := y * scaleY
			for sx := 0; sx < scaleX; sx++ {
				r.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}

func shadeIndex(c video.Color) int {
	switch c {
	case video.White:
		return 3
	case video.LightGrey:
		return 2
	case video.DarkGrey:
		return 1
	default:
		return 0
	}
}
