// Package state saves and restores parameter presets.
package state

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/justyntemme/chopgo/pkg/framework/param"
)

const magic = "CHOPGO"

// Preset is the serialized form of a parameter snapshot. Values are plain
// values keyed by parameter name so presets survive reordering.
type Preset struct {
	Version uint32             `msgpack:"version"`
	Plugin  string             `msgpack:"plugin,omitempty"`
	Values  map[string]float64 `msgpack:"values"`
}

// Manager handles preset saving and loading
type Manager struct {
	version  uint32
	pluginID string
	registry *param.Registry
}

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  1,
		registry: registry,
	}
}

// SetPluginID tags saved presets with the plugin ID and makes Load reject
// presets tagged for another plugin.
func (m *Manager) SetPluginID(id string) {
	m.pluginID = id
}

// Snapshot captures the current parameter values. Pulses carry no value and
// are left out.
func (m *Manager) Snapshot() Preset {
	p := Preset{
		Version: m.version,
		Plugin:  m.pluginID,
		Values:  make(map[string]float64),
	}
	for _, prm := range m.registry.All() {
		if prm.Kind == param.Pulse {
			continue
		}
		p.Values[prm.Name] = prm.GetPlainValue()
	}
	return p
}

// Apply sets parameters from a preset. Unknown names are ignored for
// forward compatibility.
func (m *Manager) Apply(p Preset) error {
	if p.Version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", p.Version, m.version)
	}
	if m.pluginID != "" && p.Plugin != "" && p.Plugin != m.pluginID {
		return fmt.Errorf("preset belongs to %s, not %s", p.Plugin, m.pluginID)
	}

	for name, value := range p.Values {
		if prm := m.registry.GetByName(name); prm != nil && prm.Kind != param.Pulse {
			prm.SetPlainValue(value)
		}
	}
	return nil
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := msgpack.NewEncoder(w).Encode(m.Snapshot()); err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return nil
}

// Load reads the plugin state from a reader
func (m *Manager) Load(r io.Reader) error {
	p, err := Decode(r)
	if err != nil {
		return err
	}
	return m.Apply(p)
}

// Decode reads a preset without applying it
func Decode(r io.Reader) (Preset, error) {
	var p Preset

	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return p, fmt.Errorf("read header: %w", err)
	}
	if !bytes.Equal(header, []byte(magic)) {
		return p, fmt.Errorf("invalid state format")
	}

	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("decode preset: %w", err)
	}
	return p, nil
}
