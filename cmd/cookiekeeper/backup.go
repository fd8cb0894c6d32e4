package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/lunafish/cookiekeeper"
)

func backupCmd(ctx *cli.Context) error {
	log, flush := newLogger(ctx.GlobalBool("verbose"))
	defer flush()

	store, path, err := openStore(ctx)
	if err != nil {
		return err
	}

	key := ctx.GlobalString("store-key")
	backupPath, err := store.Backup(key)
	if err != nil {
		return err
	}
	fmt.Printf("backed up %s to %s\n", path, backupPath)

	for _, warning := range store.PruneBackups(key, cookiekeeper.DefaultKeepBackups) {
		log.Warning("%s", warning)
	}
	return nil
}
