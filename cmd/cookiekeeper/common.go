package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/lunafish/cookiekeeper"
)

const sealKeyEnv = "COOKIEKEEPER_SEAL_KEY"

// resolveEnvPath returns the env file to operate on: --env when given,
// otherwise the first of ./.env and ~/.env that exists.
func resolveEnvPath(ctx *cli.Context) (string, error) {
	if path := ctx.GlobalString("env"); path != "" {
		return path, nil
	}
	candidates := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".env"))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.New("no .env file found (use --env)")
}

func openStore(ctx *cli.Context) (cookiekeeper.Store, string, error) {
	path, err := resolveEnvPath(ctx)
	if err != nil {
		return nil, "", err
	}
	var store cookiekeeper.Store = cookiekeeper.NewFileStore(nil, path)
	if ctx.GlobalBool("sealed") {
		key, err := sealKey()
		if err != nil {
			return nil, "", err
		}
		store = cookiekeeper.NewSealedStore(store, key)
	}
	return store, path, nil
}

// sealKey derives the AES key from COOKIEKEEPER_SEAL_KEY when set,
// otherwise from a secret kept in the OS keyring (created on first use).
func sealKey() ([]byte, error) {
	if secret := os.Getenv(sealKeyEnv); secret != "" {
		return cookiekeeper.SealKey(secret), nil
	}
	secret, err := cookiekeeper.NewKeychain().EnsureSecret()
	if err != nil {
		return nil, err
	}
	return cookiekeeper.SealKey(secret), nil
}

// readInput returns the cookie payload from -c, -f, or stdin, in that
// order, along with a short label describing where it came from.
func readInput(ctx *cli.Context) (payload, source string, err error) {
	if c := ctx.String("cookie"); c != "" {
		return c, "flag", nil
	}
	if file := ctx.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", err
		}
		return string(data), "file", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", err
	}
	payload = strings.TrimSpace(string(data))
	if payload == "" {
		return "", "", errors.New("empty cookie input (use -c, -f, or stdin)")
	}
	return payload, "stdin", nil
}
