package testsupport

import (
	"fmt"
	"net"
	"sync"
)

var (
	portsMu sync.Mutex
	ports   = map[string]int{}
)

// FreePort asks the kernel for an unused TCP port and caches the answer
// under the given logical name for the lifetime of the process, so repeated
// lookups for the same name ("http", "https", ...) agree across a test run.
func FreePort(name string) (int, error) {
	portsMu.Lock()
	defer portsMu.Unlock()

	if p, ok := ports[name]; ok {
		return p, nil
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("could not find a free port: %w", err)
	}
	defer l.Close()

	p := l.Addr().(*net.TCPAddr).Port
	ports[name] = p
	return p, nil
}
