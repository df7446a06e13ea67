package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/preroll-cli/preroll/log"
)

// observedProperties are registered with observe_property on the observer's own connection;
// mpv only delivers property-change events to the client that asked for them.
var observedProperties = []string{
	"time-pos",
	"duration",
	"pause",
	"seeking",
	"eof-reached",
	"paused-for-cache",
	"volume",
}

// observer holds a persistent connection to mpv and forwards every line to handle.
type observer struct {
	socketPath string
	handle     func(line []byte)

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

func newObserver(socketPath string, handle func(line []byte)) *observer {
	return &observer{
		socketPath: socketPath,
		handle:     handle,
	}
}

// Start subscribes to property changes and begins the read loop.
func (o *observer) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.listening {
		return nil
	}

	conn, err := net.Dial("unix", o.socketPath)
	if err != nil {
		return fmt.Errorf("observer connect: %w", err)
	}

	for i, name := range observedProperties {
		payload, err := json.Marshal(map[string]interface{}{
			"command": []interface{}{"observe_property", i + 1, name},
		})
		if err != nil {
			conn.Close()
			return fmt.Errorf("marshal observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	o.conn = conn
	o.listening = true
	o.done = make(chan struct{})

	go o.readLoop(conn, o.done)

	log.Infof("mpv observer started on %s", o.socketPath)
	return nil
}

// Stop closes the connection, which unblocks and ends the read loop.
func (o *observer) Stop() {
	o.mu.Lock()
	if !o.listening {
		o.mu.Unlock()
		return
	}
	o.listening = false
	conn, done := o.conn, o.done
	o.mu.Unlock()

	_ = conn.Close()
	<-done
}

func (o *observer) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		o.handle(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil {
		o.mu.Lock()
		stopping := !o.listening
		o.mu.Unlock()
		if !stopping {
			log.Warnf("mpv observer read error: %v", err)
		}
	}
}
