//go:build linux

package lib

import (
	"syscall"
)

const PR_SET_NO_NEW_PRIVS = 0x26

func SetNoNewPrivs() error {
	_, _, e := syscall.Syscall6(syscall.SYS_PRCTL, PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0, 0)
	if e != 0 {
		return e
	}
	return nil
}
