package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pkordes/train-dispatch/internal/config"
	"github.com/pkordes/train-dispatch/internal/console"
	"github.com/pkordes/train-dispatch/internal/domain"
)

func consoleCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "console",
		Usage: "run the interactive text menu",
		Flags: registryFlags(cfg),
		Action: func(c *cli.Context) error {
			// Logs go to stderr so they don't interleave with the menu.
			logger := newLogger(c.App.ErrWriter, cfg.LogLevel)

			svc, err := newDispatch(c, logger)
			if err != nil {
				return err
			}
			return console.New(c.App.Reader, c.App.Writer, svc).Run(c.Context)
		},
	}
}

func boardCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "print the departure board once and exit",
		Flags: append(registryFlags(cfg),
			&cli.StringFlag{
				Name:  "at",
				Usage: "move the clock to hh:mm before printing",
			},
		),
		Action: func(c *cli.Context) error {
			logger := newLogger(c.App.ErrWriter, cfg.LogLevel)

			svc, err := newDispatch(c, logger)
			if err != nil {
				return err
			}
			if at := c.String("at"); at != "" {
				t, err := domain.ParseClock(at)
				if err != nil {
					return err
				}
				if _, err := svc.SetTime(c.Context, t); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(c.App.Writer, svc.Board(c.Context))
			return err
		},
	}
}
