package plugin

import (
	"errors"

	"github.com/google/uuid"
)

// Info contains plugin metadata
type Info struct {
	ID        string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name      string // Display name
	OpType    string // Operator type name the host registers, e.g. "Generator"
	OpLabel   string // Label shown in the host's operator menu
	OpIcon    string // Three letter icon
	Version   string // Semantic version (e.g., "1.0.0")
	Vendor    string // Company/developer name
	Email     string
	MinInputs int32
	MaxInputs int32
}

// namespace scopes plugin class IDs so they never collide with UUIDs derived
// from the same string elsewhere.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/justyntemme/chopgo"))

// UID derives a stable 16-byte class ID from the string ID
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(namespace, []byte(i.ID))
}

// UUID returns the class ID in its canonical string form
func (i Info) UUID() string {
	return uuid.UUID(i.UID()).String()
}

// ValidateUID reports whether a class ID can be derived
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID must not be empty")
	}
	if i.UID() == uuid.Nil {
		return errors.New("plugin ID produced a nil UID")
	}
	return nil
}
