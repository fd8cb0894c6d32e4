package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/lunafish/cookiekeeper"
)

func statusCmd(ctx *cli.Context) error {
	store, path, err := openStore(ctx)
	if err != nil {
		return err
	}

	key := ctx.GlobalString("store-key")
	raw, ok, err := store.Read(key)
	if err != nil {
		return err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return fmt.Errorf("no %s entry in %s", key, path)
	}

	set := cookiekeeper.Parse(raw)
	report := cookiekeeper.Evaluate(set, time.Now(), 0)

	fmt.Printf("cookie status for %s\n\n", path)
	printReport(os.Stdout, report)
	return nil
}
