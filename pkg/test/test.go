// Package test holds helpers for tests that need real network listeners.
package test

import (
	"net"
	"sync"
)

var (
	mtx   sync.Mutex
	taken = map[int]struct{}{}
)

// RandomPort reserves a free TCP port and returns it. A port is never
// handed out twice within one process, so parallel tests don't collide.
func RandomPort() int {
	for {
		l, err := net.Listen("tcp", "localhost:0")
		if err != nil {
			continue
		}

		port := l.Addr().(*net.TCPAddr).Port
		_ = l.Close()

		mtx.Lock()
		if _, ok := taken[port]; !ok {
			taken[port] = struct{}{}
			mtx.Unlock()
			return port
		}
		mtx.Unlock()
	}
}
