package sidebar

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

type ItemType string

const (
	ItemTypeDoc           ItemType = "doc"
	ItemTypeCategory      ItemType = "category"
	ItemTypeAutogenerated ItemType = "autogenerated"
)

var itemFields = []string{"type", "id", "label", "dir", "items"}

// Item is one entry of a hand-authored sidebar. In YAML it may also be written as a bare document
// id, or as a single-key map from a category label to its items.
type Item struct {
	Type  ItemType `yaml:"type,omitempty" json:"type,omitempty"`
	ID    string   `yaml:"id,omitempty" json:"id,omitempty"`
	Label string   `yaml:"label,omitempty" json:"label,omitempty"`
	Dir   string   `yaml:"dir,omitempty" json:"dir,omitempty"`
	Items Items    `yaml:"items,omitempty" json:"items,omitempty"`

	Line int `yaml:"-" json:"-"`
}

type Items []Item

// Config maps sidebar ids to their items.
type Config map[string]Items

func (i *Item) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*i = Item{Type: ItemTypeDoc, ID: value.Value, Line: value.Line}
		return nil
	case yaml.MappingNode:
	default:
		return errors.Errorf("line %d: a sidebar item must be a document id or a map", value.Line)
	}

	if isCategoryShorthand(value) {
		var children Items
		if err := value.Content[1].Decode(&children); err != nil {
			return err
		}

		*i = Item{Type: ItemTypeCategory, Label: value.Content[0].Value, Items: children, Line: value.Line}
		return nil
	}

	type plain Item
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}

	*i = Item(p)
	i.Line = value.Line
	if i.Type == "" {
		i.Type = inferType(i)
	}

	return nil
}

func (i *Items) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		out := make(Items, 0, len(value.Content))
		for _, n := range value.Content {
			var item Item
			if err := n.Decode(&item); err != nil {
				return err
			}
			out = append(out, item)
		}
		*i = out
	case yaml.MappingNode:
		out := make(Items, 0, len(value.Content)/2)
		for k := 0; k+1 < len(value.Content); k += 2 {
			var children Items
			if err := value.Content[k+1].Decode(&children); err != nil {
				return err
			}
			out = append(out, Item{Type: ItemTypeCategory, Label: value.Content[k].Value, Items: children, Line: value.Content[k].Line})
		}
		*i = out
	case yaml.ScalarNode:
		if value.ShortTag() != "!!null" {
			return errors.Errorf("line %d: sidebar items must be a list or a map of categories", value.Line)
		}
		*i = Items{}
	default:
		return errors.Errorf("line %d: sidebar items must be a list or a map of categories", value.Line)
	}

	return nil
}

// isCategoryShorthand matches `{"Getting Started": [...]}`.
func isCategoryShorthand(value *yaml.Node) bool {
	if len(value.Content) != 2 {
		return false
	}

	key, val := value.Content[0], value.Content[1]
	if slices.Contains(itemFields, key.Value) {
		return false
	}

	return val.Kind == yaml.SequenceNode || val.Kind == yaml.MappingNode
}

func inferType(i *Item) ItemType {
	switch {
	case i.ID != "":
		return ItemTypeDoc
	case i.Dir != "":
		return ItemTypeAutogenerated
	default:
		return ItemTypeCategory
	}
}

// IDs returns the sidebar ids in sorted order.
func (c Config) IDs() []string {
	ids := lo.Keys(c)
	sort.Strings(ids)
	return ids
}

// ParseConfig decodes a sidebar configuration. Files ending in .json or .jsonc are read as JSON
// with comments and trailing commas; everything else is YAML.
func ParseConfig(fileName string, data []byte) (Config, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == ".json" || ext == ".jsonc" {
		v, err := hujson.Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse the sidebar file '%s'", fileName)
		}

		v.Standardize()
		v.Minimize()
		data = v.Pack()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode the sidebar file '%s'", fileName)
	}

	if cfg == nil {
		cfg = Config{}
	}

	return cfg, nil
}

func LoadConfig(fs afero.Fs, path string) (Config, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the sidebar file %s", path)
	}

	return ParseConfig(path, buf)
}
