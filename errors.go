package cookiekeeper

import "fmt"

// StoreAccessError reports a failed read, write, or backup of the
// underlying store. Pure operations (Parse, Merge, Evaluate, Serialize)
// never fail; store I/O is the only error source in this package.
type StoreAccessError struct {
	Op   string // "read", "write", or "backup"
	Path string
	Err  error
}

func (e *StoreAccessError) Error() string {
	return fmt.Sprintf("cookiekeeper: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreAccessError) Unwrap() error { return e.Err }
