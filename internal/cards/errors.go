package cards

import "fmt"

// LoadError reports a failed catalog load. The catalog is unusable until
// the process is restarted.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
