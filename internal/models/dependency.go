package models

import "fmt"

// Ecosystem represents a package ecosystem identified by its manifest format
type Ecosystem string

const (
	EcosystemCargo  Ecosystem = "Cargo"
	EcosystemNode   Ecosystem = "Node"
	EcosystemPython Ecosystem = "Python"
	EcosystemGo     Ecosystem = "Go"
)

// Ecosystems lists every supported ecosystem in canonical order.
var Ecosystems = []Ecosystem{EcosystemCargo, EcosystemNode, EcosystemPython, EcosystemGo}

// DisplayName returns the human-facing ecosystem name.
func (e Ecosystem) DisplayName() string {
	switch e {
	case EcosystemCargo:
		return "Rust"
	case EcosystemNode:
		return "Node.js"
	}
	return string(e)
}

// rank orders ecosystems for deterministic output; unknown tags sort last.
func (e Ecosystem) rank() int {
	for i, eco := range Ecosystems {
		if eco == e {
			return i
		}
	}
	return len(Ecosystems)
}

// Role is the declared purpose of a dependency
type Role int

const (
	RoleProduction Role = iota
	RoleDevelopment
	RoleBuild
	RoleOptional
	RoleIndirect
)

// Roles lists every role in declaration order.
var Roles = []Role{RoleProduction, RoleDevelopment, RoleBuild, RoleOptional, RoleIndirect}

var roleNames = [...]string{"production", "development", "build", "optional", "indirect"}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole converts a role name back into a Role
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// MarshalText encodes the role by name so JSON output stays readable.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Dependency represents one declared third-party package reference
type Dependency struct {
	Name           string `json:"name"`
	VersionSpec    string `json:"version_spec"`      // Raw constraint as written in the manifest
	Role           Role   `json:"role"`              // Normalized role
	SourceManifest string `json:"source_manifest"`   // File where this dependency was found
	Section        string `json:"section,omitempty"` // Raw section it was declared in
	Line           int    `json:"line,omitempty"`    // Line number in source file (if available)
}
