//go:build linux

package lib

import (
	"syscall"

	sg "github.com/seccomp/libseccomp-golang"
)

// syscalls a rasterizer never needs, they fail with EPERM instead of killing
// the process so poppler can still report a readable error
var DENIED_SYSCALLS = []string{
	// network
	"socket", "socketpair", "connect", "bind", "listen", "accept", "accept4",
	"sendto", "recvfrom", "sendmsg", "recvmsg", "sendmmsg", "recvmmsg",
	// tracing and foreign memory
	"ptrace", "process_vm_readv", "process_vm_writev",
	// namespaces and mounts
	"mount", "umount2", "unshare", "setns", "pivot_root", "chroot",
	// kernel
	"kexec_load", "init_module", "finit_module", "delete_module", "bpf",
	"keyctl", "add_key", "request_key", "reboot", "swapon", "swapoff",
}

// Seccomp loads a filter that allows everything except the denied syscalls.
// Names unknown to the running architecture are skipped.
func Seccomp(denied_syscalls []string) error {
	ctx, err := sg.NewFilter(sg.ActAllow)
	if err != nil {
		return err
	}
	defer ctx.Release()

	deny := sg.ActErrno.SetReturnCode(int16(syscall.EPERM))
	for _, name := range denied_syscalls {
		call, err := sg.GetSyscallFromName(name)
		if err != nil {
			continue
		}
		err = ctx.AddRule(call, deny)
		if err != nil {
			return err
		}
	}

	err = SetNoNewPrivs()
	if err != nil {
		return err
	}

	return ctx.Load()
}
