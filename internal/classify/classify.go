// Package classify maps entry types to naming-convention prefixes and decides
// whether a display name already complies. The rule table is caller-supplied
// configuration, never process-wide state.
package classify

import "strings"

// Table maps type names to naming prefixes. A type with no rule means "leave
// unchanged", not an error.
type Table struct {
	prefixes map[string]string
}

// NewTable builds a rule table from a type→prefix map.
func NewTable(prefixes map[string]string) Table {
	m := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		m[k] = v
	}
	return Table{prefixes: m}
}

// Default returns the built-in rule table covering the common engine asset
// types.
func Default() Table {
	return NewTable(map[string]string{
		"AnimBlueprint":    "animBP",
		"AnimSequence":     "anim",
		"Animation":        "anim",
		"BlendSpace1D":     "animBlnd",
		"Blueprint":        "bp",
		"CurveFloat":       "crvF",
		"CurveLinearColor": "crvL",
		"Material":         "mat",
		"MaterialFunction": "mat_func",
		"MaterialInstance": "mat_inst",
		"ParticleSystem":   "fx",
		"PhysicsAsset":     "phsx",
		"SkeletalMesh":     "sk",
		"Skeleton":         "skln",
		"SoundCue":         "cue",
		"SoundWave":        "wv",
		"StaticMesh":       "sm",
		"Texture2D":        "tex",
		"TextureCube":      "HDRI",
	})
}

// Len returns the number of rules.
func (t Table) Len() int {
	return len(t.prefixes)
}

// PrefixFor looks up the prefix for a type name. ok is false when no rule
// exists for the type.
func (t Table) PrefixFor(typeName string) (prefix string, ok bool) {
	prefix, ok = t.prefixes[typeName]
	if prefix == "" {
		return "", false
	}
	return prefix, ok
}

// Compliant reports whether name already satisfies the prefix convention.
// An empty prefix is always compliant.
func Compliant(name, prefix string) bool {
	return prefix == "" || strings.HasPrefix(name, prefix)
}

// PrefixedName returns the convention-compliant name for an entry.
func PrefixedName(prefix, name string) string {
	return prefix + "_" + name
}
