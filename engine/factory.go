package engine

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/preroll-cli/preroll/key"
	"github.com/spf13/viper"
)

const (
	BackendMPV    = "mpv"
	BackendMemory = "memory"
)

// Backends lists the accepted values of the engine.backend setting.
var Backends = []string{BackendMPV, BackendMemory}

// Runner is implemented by simulated elements whose clock must be driven by the caller.
type Runner interface {
	Run(ctx context.Context, interval time.Duration)
}

// New creates an element for the backend selected by engine.backend. The title names the mpv window.
func New(title string) (Element, error) {
	switch backend := viper.GetString(key.EngineBackend); backend {
	case BackendMPV:
		return NewMPV(viper.GetString(key.EngineMPVBinary), title), nil
	case BackendMemory:
		return NewMemory(viper.GetFloat64(key.EngineMemoryDuration)), nil
	default:
		return nil, fmt.Errorf("unknown engine backend %q, expected one of %v", backend, Backends)
	}
}

// Available reports whether the configured backend can run on this machine.
// The mpv backend needs its binary in PATH; the memory backend is always available.
func Available() (missing string, ok bool) {
	if viper.GetString(key.EngineBackend) != BackendMPV {
		return "", true
	}

	binary := viper.GetString(key.EngineMPVBinary)
	if binary == "" {
		binary = "mpv"
	}

	if _, err := exec.LookPath(binary); err != nil {
		return binary, false
	}
	return "", true
}
