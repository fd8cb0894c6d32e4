package cookiekeeper

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/afero"
)

func init() {
	// Keep "KEY=value" output so the env file stays dotenv-compatible.
	ini.PrettyFormat = false
}

// Store is the persistence contract for the serialized cookie string: a
// keyed text store with snapshot-style backups. The concrete store in this
// system is the bot's env file (FileStore); SealedStore wraps any Store with
// encryption at rest.
//
// Store implementations provide no locking. Hosts that persist concurrently
// against the same store must serialize those calls themselves.
type Store interface {
	// Read returns the current value for key. ok is false when the key is
	// absent from an otherwise readable store.
	Read(key string) (value string, ok bool, err error)

	// Write replaces the value for key. The store either keeps its old
	// content or holds the new value in full; a failed write never leaves
	// a torn file behind.
	Write(key, value string) error

	// Backup snapshots the current store content under a
	// timestamp-suffixed identifier and returns that identifier.
	Backup(key string) (string, error)

	// PruneBackups removes all but the newest keep backups. Best effort:
	// failures come back as warnings, never as an error, and must not
	// fail an enclosing persist.
	PruneBackups(key string, keep int) (warnings []string)
}

// FileStore keeps key=value pairs in a dotenv-style file, the format the
// bot reads its COOKIES_STR from. The file is parsed and rewritten through
// go-ini with inline-comment splitting disabled, so cookie values carrying
// ';' survive the round trip and unrelated keys and comments are preserved.
//
// A missing or unreadable file is a StoreAccessError for both reads and
// writes; the store never creates the env file itself.
type FileStore struct {
	fs   afero.Fs
	path string

	now func() time.Time // stubbed in tests for stable backup names
}

// NewFileStore returns a store over the env file at path. A nil fs selects
// the OS filesystem; tests pass an afero memory fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileStore{fs: fs, path: path, now: time.Now}
}

func (s *FileStore) load() (*ini.File, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, &StoreAccessError{Op: "read", Path: s.path, Err: err}
	}
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, &StoreAccessError{Op: "read", Path: s.path, Err: err}
	}
	return cfg, nil
}

// Read returns the value stored under key.
func (s *FileStore) Read(key string) (string, bool, error) {
	cfg, err := s.load()
	if err != nil {
		return "", false, err
	}
	section := cfg.Section("")
	if !section.HasKey(key) {
		return "", false, nil
	}
	return section.Key(key).String(), true, nil
}

// Write replaces the value under key, keeping every other line of the env
// file intact. The rewrite goes through a temp file and a rename so the env
// file is never left half-written.
func (s *FileStore) Write(key, value string) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	cfg.Section("").Key(key).SetValue(value)

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return &StoreAccessError{Op: "write", Path: s.path, Err: err}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o600); err != nil {
		return &StoreAccessError{Op: "write", Path: s.path, Err: err}
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return &StoreAccessError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Backup copies the whole env file to "<path>.backup.<unix>" and returns
// the backup path. The key argument is ignored: this store holds one file
// and snapshots it whole, so unrelated keys are preserved too.
func (s *FileStore) Backup(key string) (string, error) {
	_ = key
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return "", &StoreAccessError{Op: "backup", Path: s.path, Err: err}
	}
	backupPath := fmt.Sprintf("%s.backup.%d", s.path, s.now().Unix())
	if err := afero.WriteFile(s.fs, backupPath, data, 0o600); err != nil {
		return "", &StoreAccessError{Op: "backup", Path: backupPath, Err: err}
	}
	return backupPath, nil
}

// PruneBackups deletes all but the newest keep backup files, newest decided
// by the unix-timestamp suffix. keep <= 0 prunes nothing. Failures are
// returned as warnings for the caller to log.
func (s *FileStore) PruneBackups(key string, keep int) []string {
	_ = key
	if keep <= 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	prefix := filepath.Base(s.path) + ".backup."

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return []string{fmt.Sprintf("cookiekeeper: list backups in %s: %v", dir, err)}
	}

	type backup struct {
		path string
		ts   int64
	}
	var backups []backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		ts, err := strconv.ParseInt(strings.TrimPrefix(entry.Name(), prefix), 10, 64)
		if err != nil {
			continue
		}
		backups = append(backups, backup{path: filepath.Join(dir, entry.Name()), ts: ts})
	}
	if len(backups) <= keep {
		return nil
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].ts > backups[j].ts })

	var warnings []string
	for _, old := range backups[keep:] {
		if err := s.fs.Remove(old.path); err != nil {
			warnings = append(warnings, fmt.Sprintf("cookiekeeper: prune backup %s: %v", old.path, err))
		}
	}
	return warnings
}

// DefaultKeepBackups is how many backup snapshots survive pruning.
const DefaultKeepBackups = 5

// PersistOptions control PersistIfChanged.
type PersistOptions struct {
	// Backup snapshots the current store content before overwriting it.
	Backup bool

	// KeepBackups is how many backups survive pruning after a write;
	// 0 selects DefaultKeepBackups.
	KeepBackups int

	// Logger receives prune warnings. Nil discards them.
	Logger Logger
}

// PersistResult reports what PersistIfChanged did.
type PersistResult struct {
	Written    bool
	BackupPath string
}

// PersistIfChanged writes the serialized set under key unless the store
// already holds exactly that content, in which case nothing is written and
// Written is false. When a backup is requested and prior content exists,
// the backup is taken before the write; a failed backup aborts the persist
// so the caller is never left with a new value and no snapshot. Pruning
// excess backups afterwards is best-effort and only logged.
func PersistIfChanged(store Store, key string, set CookieSet, opts PersistOptions) (PersistResult, error) {
	log := opts.Logger
	if log == nil {
		log = NopLogger()
	}
	keep := opts.KeepBackups
	if keep == 0 {
		keep = DefaultKeepBackups
	}

	current, ok, err := store.Read(key)
	if err != nil {
		return PersistResult{}, err
	}

	next := Serialize(set)
	if ok && current == next {
		return PersistResult{}, nil
	}

	var result PersistResult
	if opts.Backup && ok {
		backupPath, err := store.Backup(key)
		if err != nil {
			return PersistResult{}, err
		}
		result.BackupPath = backupPath
		for _, warning := range store.PruneBackups(key, keep) {
			log.Warning("%s", warning)
		}
	}

	if err := store.Write(key, next); err != nil {
		return PersistResult{}, err
	}
	result.Written = true
	return result, nil
}
