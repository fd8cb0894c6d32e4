package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/lunafish/cookiekeeper"
)

func validateCmd(ctx *cli.Context) error {
	payload, _, err := readInput(ctx)
	if err != nil {
		return err
	}

	set := cookiekeeper.ParsePayload(payload)
	report := cookiekeeper.Evaluate(set, time.Now(), 0)
	printReport(os.Stdout, report)

	if ctx.Bool("strict") && !report.IsComplete {
		return fmt.Errorf("cookie incomplete: missing %s", strings.Join(report.MissingRequired, ", "))
	}
	return nil
}
