package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/inovacc/gameshelf/internal/application"
	"github.com/inovacc/gameshelf/internal/encoding"
)

// InfoFileName is written next to the config while a server runs.
const InfoFileName = "server.json"

// ErrNoServerInfo indicates no server info file exists
var ErrNoServerInfo = errors.New("no server info file")

// Info describes a running server for `gameshelf server status|stop`.
type Info struct {
	Address   string    `json:"address"`
	PID       int       `json:"pid"`
	Driver    string    `json:"driver,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// URL returns the base URL clients use to reach the server.
func (i Info) URL() string {
	return "http://" + i.Address
}

// DefaultInfoPath returns the server info path inside the application directory.
func DefaultInfoPath() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, InfoFileName), nil
}

// WriteInfo writes info to path with owner-only permissions.
func WriteInfo(path string, info Info) error {
	if err := encoding.Save(path, info); err != nil {
		return fmt.Errorf("failed to write server info file: %w", err)
	}

	return nil
}

// ReadInfo reads the server info file if it exists
func ReadInfo(path string) (*Info, error) {
	var info Info

	found, err := encoding.LoadInto(path, &info)
	if err != nil {
		return nil, fmt.Errorf("failed to read server info: %w", err)
	}

	if !found {
		return nil, ErrNoServerInfo
	}

	return &info, nil
}

// RemoveInfo removes the server info file (called when server stops)
func RemoveInfo(path string) {
	_ = os.Remove(path)
}

// IsProcessRunning checks if a process with the given PID is still running
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix, FindProcess always succeeds, so we need to send signal 0 to check
	return process.Signal(syscall.Signal(0)) == nil
}

// Running returns the info of the server recorded at path if its process
// is alive. A stale file is removed.
func Running(path string) *Info {
	info, err := ReadInfo(path)
	if err != nil {
		return nil
	}

	if IsProcessRunning(info.PID) {
		return info
	}

	RemoveInfo(path)

	return nil
}
