package meta

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// Metadata describes the executable behind a process.
type Metadata struct {
	Path        string
	Description string
	Publisher   string
}

// Empty reports whether no field was resolved.
func (m Metadata) Empty() bool {
	return m.Path == "" && m.Description == "" && m.Publisher == ""
}

// Resolver looks up executable metadata for a PID. Implementations are
// stateless and may be called repeatedly for the same PID; caching is the
// caller's concern.
type Resolver interface {
	Resolve(pid int32) (Metadata, error)
}

// SysResolver queries the OS for executable metadata.
type SysResolver struct{}

// NewSysResolver creates an OS-backed resolver.
func NewSysResolver() *SysResolver {
	return &SysResolver{}
}

// Resolve returns the executable path, command line, and owning user for pid.
// Any lookup failure (process exited, access denied) is returned as an error
// and resolves nothing.
func (r *SysResolver) Resolve(pid int32) (Metadata, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return Metadata{}, fmt.Errorf("opening process %d: %w", pid, err)
	}

	path, err := p.Exe()
	if err != nil {
		return Metadata{}, fmt.Errorf("reading executable path for pid %d: %w", pid, err)
	}

	m := Metadata{Path: path}

	// Command line and owner are nice-to-have; a partial result is still a result.
	if cmdline, err := p.Cmdline(); err == nil {
		m.Description = cmdline
	}
	if user, err := p.Username(); err == nil {
		m.Publisher = user
	}

	return m, nil
}
