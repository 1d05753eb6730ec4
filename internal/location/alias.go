package location

import (
	"strconv"

	strutil "standsdir/pkg/platform/strings"
)

// AliasGroup lists raw names that refer to the same place.
type AliasGroup struct {
	Name string   `yaml:"name" json:"name"`
	Keys []string `yaml:"keys" json:"keys"`
}

// AliasTable maps a Key to the group of equivalent keys.
//
// Invariants:
//   - every Key belongs to at most one group
//   - a Key with no configured group expands to itself
//   - the table is immutable after construction
type AliasTable struct {
	groups [][]Key
	names  []string
	index  map[Key]int
}

// NewAliasTable validates and indexes groups. A key present in two different
// groups, or a group with no usable keys, yields a *ConfigurationError.
// Repeats inside one group are collapsed.
func NewAliasTable(groups []AliasGroup) (*AliasTable, error) {
	t := &AliasTable{
		groups: make([][]Key, 0, len(groups)),
		names:  make([]string, 0, len(groups)),
		index:  make(map[Key]int),
	}

	for i, g := range groups {
		name := g.Name
		if name == "" {
			name = "#" + strconv.Itoa(i)
		}

		normalized := strutil.DedupeBy(g.Keys, func(s string) string {
			return string(Normalize(s))
		})
		if len(normalized) == 0 {
			return nil, &ConfigurationError{Group: name, Reason: "no non-empty keys"}
		}

		keys := make([]Key, 0, len(normalized))
		for _, raw := range normalized {
			k := Key(raw)
			if owner, taken := t.index[k]; taken {
				return nil, &ConfigurationError{Group: name, OtherGroup: t.names[owner], Key: k}
			}
			t.index[k] = len(t.groups)
			keys = append(keys, k)
		}
		t.groups = append(t.groups, keys)
		t.names = append(t.names, name)
	}

	return t, nil
}

// Expand returns every key equivalent to k, k included, in configured order.
// Unknown keys expand to themselves; the empty key expands to nothing.
// The returned slice is owned by the caller.
func (t *AliasTable) Expand(k Key) []Key {
	if k == "" {
		return nil
	}
	if t != nil {
		if gi, ok := t.index[k]; ok {
			return append([]Key(nil), t.groups[gi]...)
		}
	}
	return []Key{k}
}

// Equivalent reports whether a and b are in the same alias group (or equal).
func (t *AliasTable) Equivalent(a, b Key) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if t == nil {
		return false
	}
	ga, okA := t.index[a]
	gb, okB := t.index[b]
	return okA && okB && ga == gb
}

// GroupName returns the configured name of the group holding k.
func (t *AliasTable) GroupName(k Key) (string, bool) {
	if t == nil {
		return "", false
	}
	gi, ok := t.index[k]
	if !ok {
		return "", false
	}
	return t.names[gi], true
}

// Len returns the number of configured groups.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.groups)
}
