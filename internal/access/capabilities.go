package access

import (
	"embed"
	"fmt"

	"docshare/internal/domain/models"

	"gopkg.in/yaml.v3"
)

//go:embed config/roles.yaml
var configFiles embed.FS

// RoleCapabilities lists the interface actions a role is offered
type RoleCapabilities struct {
	Role            models.Role `yaml:"role" json:"role"`
	ManageAdmin     bool        `yaml:"manage_admin" json:"manageAdmin"`
	ShareAny        bool        `yaml:"share_any" json:"shareAny"`
	EditAny         bool        `yaml:"edit_any" json:"editAny"`
	ShareDepartment bool        `yaml:"share_department" json:"shareDepartment"`
}

type capabilityFile struct {
	Roles []RoleCapabilities `yaml:"roles"`
}

// Capabilities is the role capability table
type Capabilities struct {
	roles map[models.Role]RoleCapabilities
}

// LoadCapabilities parses the embedded role table
func LoadCapabilities() (*Capabilities, error) {
	data, err := configFiles.ReadFile("config/roles.yaml")
	if err != nil {
		return nil, fmt.Errorf("read roles.yaml: %w", err)
	}
	return ParseCapabilities(data)
}

// ParseCapabilities parses a YAML role table
func ParseCapabilities(data []byte) (*Capabilities, error) {
	var file capabilityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal roles: %w", err)
	}

	c := &Capabilities{roles: make(map[models.Role]RoleCapabilities, len(file.Roles))}
	for _, rc := range file.Roles {
		if !rc.Role.Valid() {
			return nil, fmt.Errorf("unknown role %q", rc.Role)
		}
		c.roles[rc.Role] = rc
	}
	return c, nil
}

// For returns the capabilities of role; unknown roles get none
func (c *Capabilities) For(role models.Role) RoleCapabilities {
	if rc, ok := c.roles[role]; ok {
		return rc
	}
	return RoleCapabilities{Role: role}
}
