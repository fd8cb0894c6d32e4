package main

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"
)

var inputFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "cookie, c",
		Usage: "cookie string (or JSON export) given directly",
	},
	cli.StringFlag{
		Name:  "file, f",
		Usage: "read the cookie string (or JSON export) from `FILE`",
	},
}

func run(args []string) error {
	app := cli.App{
		Name:     "cookiekeeper",
		HelpName: "cookiekeeper",
		Usage:    "inspect and refresh the bot's marketplace session cookie",
		Version:  fmt.Sprintf("%s-%s (%s_%s)", version, commit, runtime.GOOS, runtime.GOARCH),
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "env",
				Usage: "path to the env file (default: ./.env, then ~/.env)",
			},
			cli.StringFlag{
				Name:  "store-key",
				Value: "COOKIES_STR",
				Usage: "env key holding the cookie string",
			},
			cli.BoolFlag{
				Name:  "sealed",
				Usage: "keep the stored value encrypted with a keyring-held key",
			},
			cli.BoolFlag{
				Name:  "verbose, V",
				Usage: "enable debug logging",
			},
		},
		Commands: []cli.Command{
			{
				Name:   "status",
				Usage:  "show completeness, freshness, and health of the stored cookie",
				Action: statusCmd,
			},
			{
				Name:   "validate",
				Usage:  "check a cookie string without writing it",
				Action: validateCmd,
				Flags: append([]cli.Flag{
					cli.BoolFlag{
						Name:  "strict",
						Usage: "exit non-zero when required fields are missing",
					},
				}, inputFlags...),
			},
			{
				Name:   "update",
				Usage:  "write a new cookie string into the env file",
				Action: updateCmd,
				Flags: append([]cli.Flag{
					cli.BoolFlag{
						Name:  "merge",
						Usage: "overlay the new fields onto the stored cookie instead of replacing it",
					},
					cli.BoolFlag{
						Name:  "no-backup",
						Usage: "skip the env file backup before writing",
					},
					cli.BoolFlag{
						Name:  "force",
						Usage: "write even when required fields are missing",
					},
				}, inputFlags...),
			},
			{
				Name:   "backup",
				Usage:  "snapshot the env file",
				Action: backupCmd,
			},
			{
				Name:   "history",
				Usage:  "list recent cookie updates",
				Action: historyCmd,
				Flags: []cli.Flag{
					cli.IntFlag{
						Name:  "n",
						Value: 10,
						Usage: "number of entries to show",
					},
				},
			},
		},
		UseShortOptionHandling: true,
	}
	return app.Run(args)
}
