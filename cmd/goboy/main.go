// Command goboy runs the DMG emulator's terminal front end against a ROM file.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/kjhall/go-dmgboy/backend/terminal"
	"github.com/kjhall/go-dmgboy/goboy"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "goboy"
	app.Description = "A DMG Game Boy emulator"
	app.Usage = "goboy [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the game ROM file",
		},
		cli.StringFlag{
			Name:  "boot",
			Usage: "Path to a boot ROM file; if omitted, the emulator starts post-boot",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Run exactly N frames headless and exit, instead of opening the terminal UI (0 = unlimited)",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("goboy exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	game, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	var board *goboy.Board
	if bootPath := c.String("boot"); bootPath != "" {
		boot, err := os.ReadFile(bootPath)
		if err != nil {
			return err
		}
		board = goboy.NewWithBoot(boot, game)
	} else {
		board = goboy.NewNoBoot(game)
	}

	slog.Info("loaded cartridge", "title", board.Title())

	if frames := c.Int("frames"); frames > 0 {
		for i := 0; i < frames; i++ {
			board.RunToNextFrame()
		}
		return nil
	}

	renderer, err := terminal.New(board)
	if err != nil {
		return err
	}
	return renderer.Run()
}
