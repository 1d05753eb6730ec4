package location

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// aliasFile is the on-disk alias format:
//
//	include_defaults: true
//	groups:
//	  - name: united-arab-emirates
//	    keys: ["United Arab Emirates", "UAE"]
type aliasFile struct {
	IncludeDefaults bool         `yaml:"include_defaults"`
	Groups          []AliasGroup `yaml:"groups"`
}

// ParseAliasGroups decodes alias groups from YAML. When include_defaults is
// set the built-in groups come first, so a file key that repeats a built-in
// key is rejected by NewAliasTable.
func ParseAliasGroups(data []byte) ([]AliasGroup, error) {
	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}
	if !f.IncludeDefaults {
		return f.Groups, nil
	}
	return append(DefaultAliasGroups(), f.Groups...), nil
}

// LoadAliasFile reads and validates an alias file. An empty path returns the
// built-in table.
func LoadAliasFile(path string) (*AliasTable, error) {
	if path == "" {
		return NewAliasTable(DefaultAliasGroups())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file %s: %w", path, err)
	}
	groups, err := ParseAliasGroups(data)
	if err != nil {
		return nil, err
	}
	return NewAliasTable(groups)
}
