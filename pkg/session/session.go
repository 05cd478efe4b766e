// Package session records running theme-pulse sessions as PID files so
// other processes can ask them to re-sample the environment.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/fsutil"
)

// DirName is the registry directory inside the state directory.
const DirName = "sessions"

const pidSuffix = ".pid"

// Dir returns the session registry directory for stateDir.
func Dir(stateDir string) string {
	return filepath.Join(stateDir, DirName)
}

// Register atomically writes a PID file for the current process into dir
// and returns a function that removes it.
func Register(dir string) (func() error, error) {

	pid := os.Getpid()
	path := filepath.Join(dir, strconv.Itoa(pid)+pidSuffix)
	if err := fsutil.WriteAtomic(path, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return nil, fmt.Errorf("session: write PID file: %w", err)
	}

	return func() error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("session: remove PID file: %w", err)
		}
		return nil
	}, nil
}

// List returns the PIDs of live sessions in dir, sorted ascending. PID
// files of dead processes are removed. A missing directory is an empty
// list.
func List(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: %w", err)
	}

	var pids []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), pidSuffix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		pid, err := ReadPID(path)
		if err != nil || !IsProcessAlive(pid) {
			_ = os.Remove(path)
			continue
		}
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids, nil
}

// Notify sends sig to every live session in dir except the caller and
// returns the PIDs that received it. Delivery failures are joined into
// the returned error.
func Notify(dir string, sig os.Signal) ([]int, error) {
	pids, err := List(dir)
	if err != nil {
		return nil, err
	}

	self := os.Getpid()
	var sent []int
	var errs []error
	for _, pid := range pids {
		if pid == self {
			continue
		}
		p, err := os.FindProcess(pid)
		if err == nil {
			err = p.Signal(sig)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("session: signal %d: %w", pid, err))
			continue
		}
		sent = append(sent, pid)
	}
	return sent, errors.Join(errs...)
}

// ReadPID reads and parses the PID from the given file.
func ReadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse PID file: %w", err)
	}

	return pid, nil
}

// IsProcessAlive checks whether a process with the given PID exists by
// sending signal 0.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
