package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/stonekeep/curator/internal/schema"
	"gopkg.in/yaml.v3"
)

// rulesDoc is the on-disk shape of a rules file.
type rulesDoc struct {
	Prefixes map[string]string `yaml:"prefixes" toml:"prefixes" json:"prefixes"`
}

// Load reads a rule table from a YAML or TOML file, validating it against the
// embedded rules schema before use.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-supplied config path
	if err != nil {
		return Table{}, fmt.Errorf("reading rules file: %w", err)
	}

	var generic map[string]interface{}
	var doc rulesDoc
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return Table{}, fmt.Errorf("parsing rules file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Table{}, fmt.Errorf("parsing rules file %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &generic); err != nil {
			return Table{}, fmt.Errorf("parsing rules file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return Table{}, fmt.Errorf("parsing rules file %s: %w", path, err)
		}
	default:
		return Table{}, fmt.Errorf("unsupported rules file format: %s", filepath.Ext(path))
	}

	result, err := schema.Validate(generic, "curator-rules-v1.0.0")
	if err != nil {
		return Table{}, err
	}
	if !result.Valid {
		msgs := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			msgs[i] = fmt.Sprintf("%s: %s", e.Path, e.Message)
		}
		return Table{}, fmt.Errorf("invalid rules file %s: %s", path, strings.Join(msgs, "; "))
	}

	return NewTable(doc.Prefixes), nil
}
