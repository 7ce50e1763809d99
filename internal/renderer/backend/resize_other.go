//go:build !unix

package backend

import "os"

func watchResize(_ *os.File, _ func(Event)) func() {
	return func() {}
}
