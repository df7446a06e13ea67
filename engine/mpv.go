package engine

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/preroll-cli/preroll/constant"
	"github.com/preroll-cli/preroll/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV drives an external mpv process over its JSON-IPC socket.
// Reads are served from values cached by the property observer, so they never block on IPC.
type MPV struct {
	emitter

	binary     string
	title      string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	observer   *observer

	ipcMu sync.Mutex // serializes socket round trips

	mu       sync.Mutex
	position float64
	duration float64
	volume   float64
	closed   bool
}

// NewMPV prepares an element backed by binary. No process starts until the first Load.
func NewMPV(binary, title string) *MPV {
	if binary == "" {
		binary = "mpv"
	}

	exited := make(chan struct{})
	close(exited)

	return &MPV{
		binary:   binary,
		title:    sanitizeTitle(title),
		exited:   exited,
		duration: math.NaN(),
		volume:   1,
	}
}

// Load starts mpv paused on source, or replaces the file of the running instance.
func (m *MPV) Load(source string) error {
	target, err := sanitizeMediaTarget(source)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.position = 0
	m.duration = math.NaN()
	m.mu.Unlock()

	if !m.running() {
		return m.start(target)
	}

	if _, err := m.sendCommand("loadfile", target, "replace"); err != nil {
		return err
	}
	return m.set("pause", true)
}

func (m *MPV) start(target string) error {
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Preroll, randomBytes))
	}

	// user mpv.conf decides output and decoding
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", m.title),
		fmt.Sprintf("--title=%s", m.title),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
		target,
	}

	m.cmd = exec.Command(m.binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binary, err)
	}

	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.observer = newObserver(m.socketPath, m.handleLine)
	return m.observer.Start()
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) running() bool {
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) Play() error {
	return m.set("pause", false)
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

func (m *MPV) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MPV) SetPosition(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

func (m *MPV) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MPV) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume maps [0,1] onto mpv's percentage scale.
func (m *MPV) SetVolume(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("volume %v out of range [0,1]", v)
	}
	return m.set("volume", v*100)
}

func (m *MPV) SetPlaybackRate(rate float64) error {
	return m.set("speed", rate)
}

func (m *MPV) ToggleFullscreen() error {
	_, err := m.sendCommand("cycle", "fullscreen")
	return err
}

// SetVisible minimizes the mpv window while the element is not the active stage.
func (m *MPV) SetVisible(visible bool) error {
	if !m.running() {
		return nil
	}
	return m.set("window-minimized", !visible)
}

func (m *MPV) Subscribe(fn func(Event)) func() {
	return m.subscribe(fn)
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	if m.observer != nil {
		m.observer.Stop()
	}

	if m.socketPath == "" || !m.running() {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) set(property string, value interface{}) error {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return ErrClosed
	}

	_, err := m.sendCommand("set_property", property, value)
	return err
}

// propertyChange is one line received by the observer.
type propertyChange struct {
	Event string      `json:"event"`
	Name  string      `json:"name"`
	Data  interface{} `json:"data"`
}

// handleLine updates the cached values from an observer line and emits the matching events.
func (m *MPV) handleLine(line []byte) {
	var change propertyChange
	if err := json.Unmarshal(line, &change); err != nil {
		log.Debugf("mpv: skipping malformed line: %v", err)
		return
	}

	switch change.Event {
	case "property-change":
		for _, ev := range m.translate(change.Name, change.Data) {
			m.emit(ev)
		}
	case "playback-restart":
		m.emit(m.snapshot(Playing))
	}
}

// translate maps one property change onto element events.
func (m *MPV) translate(name string, data interface{}) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	event := func(kind Kind) []Event {
		return []Event{{Kind: kind, Position: m.position, Duration: m.duration}}
	}

	switch name {
	case "time-pos":
		if v, ok := data.(float64); ok {
			m.position = v
			return event(PositionUpdated)
		}
	case "duration":
		if v, ok := data.(float64); ok {
			m.duration = v
			return event(MetadataLoaded)
		}
		m.duration = math.NaN()
	case "pause":
		if v, ok := data.(bool); ok {
			if v {
				return event(Paused)
			}
			return append(event(PlayStarted), event(Playing)...)
		}
	case "seeking":
		if v, ok := data.(bool); ok {
			if v {
				return event(SeekStarted)
			}
			return event(SeekEnded)
		}
	case "eof-reached":
		if v, ok := data.(bool); ok && v {
			return event(Ended)
		}
	case "paused-for-cache":
		if v, ok := data.(bool); ok {
			if v {
				return event(BufferingStarted)
			}
			return event(BufferingResolved)
		}
	case "volume":
		if v, ok := data.(float64); ok {
			m.volume = v / 100
		}
	}

	return nil
}

func (m *MPV) snapshot(kind Kind) Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Event{Kind: kind, Position: m.position, Duration: m.duration}
}

// sanitizeMediaTarget validates that a source is safe to pass to mpv as a positional argument.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
