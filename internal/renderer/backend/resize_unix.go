//go:build unix

package backend

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// watchResize posts a resize event whenever the terminal reports SIGWINCH.
func watchResize(out *os.File, post func(Event)) func() {
	sigs := make(chan os.Signal, 1)
	stop := make(chan struct{})
	signal.Notify(sigs, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-sigs:
				w, h, err := term.GetSize(int(out.Fd()))
				if err == nil {
					post(ResizeEvent(w, h))
				}
			case <-stop:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(stop)
	}
}
