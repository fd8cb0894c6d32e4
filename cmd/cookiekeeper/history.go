package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/lunafish/cookiekeeper"
)

func historyCmd(ctx *cli.Context) error {
	path, err := resolveEnvPath(ctx)
	if err != nil {
		return err
	}

	ledger, err := cookiekeeper.OpenLedger(path + ".history.db")
	if err != nil {
		return fmt.Errorf("open history ledger: %w", err)
	}
	defer func() { _ = ledger.Close() }()

	records, err := ledger.Recent(context.Background(), ctx.Int("n"))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no recorded updates")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s  %2d fields  complete=%-5v fresh=%-5v  %s\n",
			record.RecordedAt.Format(time.RFC3339),
			record.FieldCount,
			record.Complete,
			record.Fresh,
			record.Digest,
		)
	}
	return nil
}
