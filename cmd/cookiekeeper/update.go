package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/lunafish/cookiekeeper"
)

func updateCmd(ctx *cli.Context) error {
	log, flush := newLogger(ctx.GlobalBool("verbose"))
	defer flush()

	payload, source, err := readInput(ctx)
	if err != nil {
		return err
	}
	set := cookiekeeper.ParsePayload(payload)
	if len(set.Fields) == 0 {
		return errors.New("no cookie fields parsed from input")
	}

	store, path, err := openStore(ctx)
	if err != nil {
		return err
	}
	key := ctx.GlobalString("store-key")

	if ctx.Bool("merge") {
		current, ok, err := store.Read(key)
		if err != nil {
			return err
		}
		if ok {
			set = cookiekeeper.Merge(cookiekeeper.Parse(current), set)
		}
	}
	set = set.WithObservedAt(time.Now())

	report := cookiekeeper.Evaluate(set, time.Now(), 0)
	if !report.IsComplete && !ctx.Bool("force") {
		return fmt.Errorf("cookie incomplete (missing %s); use --force to write anyway",
			strings.Join(report.MissingRequired, ", "))
	}

	result, err := cookiekeeper.PersistIfChanged(store, key, set, cookiekeeper.PersistOptions{
		Backup: !ctx.Bool("no-backup"),
		Logger: log,
	})
	if err != nil {
		return err
	}

	if !result.Written {
		fmt.Printf("%s already up to date (%d fields)\n", key, report.FieldCount)
		return nil
	}
	if result.BackupPath != "" {
		fmt.Printf("backed up previous env file to %s\n", result.BackupPath)
	}
	fmt.Printf("updated %s in %s (%d fields, from %s)\n", key, path, report.FieldCount, source)

	recordHistory(path, set, report, log)
	return nil
}

// recordHistory appends the persist to the SQLite ledger next to the env
// file. Ledger trouble is logged, never fatal.
func recordHistory(envPath string, set cookiekeeper.CookieSet, report cookiekeeper.StatusReport, log cookiekeeper.Logger) {
	ledger, err := cookiekeeper.OpenLedger(envPath + ".history.db")
	if err != nil {
		log.Warning("history ledger unavailable: %v", err)
		return
	}
	defer func() { _ = ledger.Close() }()

	record := cookiekeeper.UpdateRecord{
		FieldCount: report.FieldCount,
		Complete:   report.IsComplete,
		Fresh:      report.IsFresh,
		Digest:     cookiekeeper.Digest(cookiekeeper.Serialize(set)),
	}
	if err := ledger.Record(context.Background(), record); err != nil {
		log.Warning("history record failed: %v", err)
	}
}
