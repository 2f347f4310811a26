package plugin

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/debug"
)

// Handle identifies a live instance across the C boundary. Go pointers may
// not be held by C code, so the host only ever sees this number.
type Handle uintptr

// ErrNoPlugin is returned when an instance is requested before Register.
var ErrNoPlugin = errors.New("no plugin registered")

var (
	// Global map of instances indexed by handle
	instances   = make(map[Handle]*Instance)
	instancesMu sync.RWMutex
	nextHandle  Handle = 1
)

// Global plugin instance
var globalPlugin Plugin

// Config controls runtime behavior shared by all instances
type Config struct {
	// LogLevel is the minimum level written by the default logger
	LogLevel debug.LogLevel

	// LogFile, when set, sends the default logger to a file instead of
	// stderr. Hosts rarely show a plugin's stderr.
	LogFile string

	// Profile records hook timings per instance
	Profile bool
}

var globalConfig = Config{
	LogLevel: debug.LogLevelInfo,
}

// Register sets the global plugin
func Register(p Plugin) {
	globalPlugin = p
}

// Registered returns the global plugin, or nil
func Registered() Plugin {
	return globalPlugin
}

// SetConfig sets the global runtime configuration
func SetConfig(cfg Config) error {
	if cfg.LogFile != "" {
		logger, err := debug.NewFileLogger(cfg.LogFile, "chopgo", debug.DefaultFlags)
		if err != nil {
			return fmt.Errorf("configure logging: %w", err)
		}
		debug.SetDefault(logger)
	}
	debug.SetLevel(cfg.LogLevel)
	globalConfig = cfg
	return nil
}

// ConfigFromEnv builds a Config from CHOPGO_LOG_LEVEL, CHOPGO_LOG_FILE and
// CHOPGO_PROFILE. Shared libraries have no flags, so the C bridge uses this.
func ConfigFromEnv() (Config, error) {
	cfg := globalConfig
	if v := os.Getenv("CHOPGO_LOG_LEVEL"); v != "" {
		level, err := debug.ParseLevel(v)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}
	cfg.LogFile = os.Getenv("CHOPGO_LOG_FILE")
	cfg.Profile = os.Getenv("CHOPGO_PROFILE") != ""
	return cfg, nil
}

// APIVersion is returned by the version query entry point
func APIVersion() int32 {
	return chop.APIVersion
}

// CreateInstance creates an instance of the registered plugin and returns
// its handle
func CreateInstance() (Handle, error) {
	if globalPlugin == nil {
		return 0, ErrNoPlugin
	}

	inst, err := NewInstance(globalPlugin.GetInfo(), globalPlugin.CreateProcessor())
	if err != nil {
		return 0, err
	}
	if globalConfig.Profile {
		inst.EnableProfiling()
	}

	instancesMu.Lock()
	defer instancesMu.Unlock()
	h := nextHandle
	nextHandle++
	instances[h] = inst

	debug.Info("created %s instance %d", inst.Info().Name, h)
	return h, nil
}

// DestroyInstance releases an instance. Unknown handles are ignored.
func DestroyInstance(h Handle) {
	instancesMu.Lock()
	inst, ok := instances[h]
	delete(instances, h)
	instancesMu.Unlock()

	if ok {
		debug.Info("destroyed %s instance %d", inst.Info().Name, h)
	}
}

// Lookup returns the instance for a handle, or nil
func Lookup(h Handle) *Instance {
	instancesMu.RLock()
	defer instancesMu.RUnlock()

	if h == 0 {
		return nil
	}
	return instances[h]
}

// NumInstances returns the number of live instances
func NumInstances() int {
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return len(instances)
}

// recoverPanic turns a panic in a host callback into an error. A panic must
// never unwind into the host.
func recoverPanic(operation string, err *error) {
	if r := recover(); r != nil {
		debug.Error("panic in %s: %v", operation, r)
		if err != nil {
			*err = fmt.Errorf("%s: panic: %v", operation, r)
		}
	}
}
