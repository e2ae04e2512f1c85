//go:build linux

// popplerjail loads a seccomp filter and execs a poppler tool inside it.
//
//	popplerjail pdftoppm -png -r 200 upload.pdf slide
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"syscall"

	"github.com/slidelens/slidelens/internal/core/lib"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: popplerjail <binary> [args...]")
		os.Exit(2)
	}

	binary, err := exec.LookPath(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "popplerjail: %v\n", err)
		os.Exit(127)
	}

	// the filter is per thread, exec must happen on the thread that loaded it
	runtime.LockOSThread()

	if err := lib.Seccomp(lib.DENIED_SYSCALLS); err != nil {
		fmt.Fprintf(os.Stderr, "popplerjail: load seccomp filter: %v\n", err)
		os.Exit(1)
	}

	err = syscall.Exec(binary, os.Args[1:], os.Environ())
	fmt.Fprintf(os.Stderr, "popplerjail: exec %s: %v\n", binary, err)
	os.Exit(126)
}
