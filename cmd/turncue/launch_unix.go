//go:build !windows

package main

import (
	"fmt"
	"os"
	"syscall"
)

// execAgent replaces the current process with the agent so the hook leaves
// no wrapper process behind.
func execAgent(path string, argv []string) error {
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
