//go:build !windows

package supervisor

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

var (
	sigterm os.Signal = unix.SIGTERM
	sigkill os.Signal = unix.SIGKILL
	sigint  os.Signal = unix.SIGINT
)

// forwardedSignals make the shim stop its child and exit
var forwardedSignals = []os.Signal{sigterm, sigint}

// signalGroup delivers sig to the process group led by pid
func signalGroup(pid int, sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return fmt.Errorf("unsupported signal %v", sig)
	}

	pgid, err := unix.Getpgid(pid)
	if err != nil {
		return err
	}
	return unix.Kill(-pgid, s)
}

// Subscribe starts relaying the forwarded signals. The returned func stops relaying.
func Subscribe() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, forwardedSignals...)
	return ch, func() { signal.Stop(ch) }
}
