// Package frontmatter splits a markdown document into its YAML front-matter block and body and
// decodes the keys the site pipeline understands.
package frontmatter

import (
	"bytes"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

var utf8BOM = []byte("\xef\xbb\xbf")

// FrontMatter holds the document metadata. Unknown keys are ignored.
type FrontMatter struct {
	Title           string   `yaml:"title,omitempty" json:"title,omitempty" mapstructure:"title"`
	Description     string   `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	SidebarPosition *int     `yaml:"sidebar_position,omitempty" json:"sidebar_position,omitempty" mapstructure:"sidebar_position"`
	SidebarLabel    string   `yaml:"sidebar_label,omitempty" json:"sidebar_label,omitempty" mapstructure:"sidebar_label"`
	Slug            string   `yaml:"slug,omitempty" json:"slug,omitempty" mapstructure:"slug"`
	Tags            []string `yaml:"tags,omitempty" json:"tags,omitempty" mapstructure:"tags"`
}

type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "invalid front-matter: " + e.Msg
}

// Split separates the front-matter block from the body. A document without an opening delimiter
// on its first line, or without a closing delimiter, has no front-matter and is returned as body.
func Split(content []byte) (raw []byte, body []byte, found bool) {
	content = bytes.TrimPrefix(content, utf8BOM)

	offset := 0
	start := 0
	lineNo := 0
	for offset < len(content) {
		lineEnd := len(content)
		advance := len(content) - offset
		if next := bytes.IndexByte(content[offset:], '\n'); next >= 0 {
			lineEnd = offset + next
			advance = next + 1
		}

		line := bytes.TrimRight(content[offset:lineEnd], " \t\r")
		lineNo++

		if lineNo == 1 {
			if string(line) != delimiter {
				return nil, content, false
			}

			offset += advance
			start = offset
			continue
		}

		if string(line) == delimiter {
			return content[start:offset], content[offset+advance:], true
		}

		offset += advance
	}

	return nil, content, false
}

// Parse splits the document and decodes its front-matter. When the block cannot be decoded the
// zero FrontMatter is returned together with the body and a *ParseError, so callers can fall back
// to defaults instead of aborting.
func Parse(content []byte) (FrontMatter, []byte, error) {
	raw, body, found := Split(content)
	if !found {
		return FrontMatter{}, body, nil
	}

	fm, err := Decode(raw)
	if err != nil {
		return FrontMatter{}, body, err
	}

	return fm, body, nil
}

// Decode converts a raw YAML block into FrontMatter. Scalars are weakly typed, so
// `sidebar_position: "3"` and a single `tags: go` are accepted.
func Decode(raw []byte) (FrontMatter, error) {
	var fm FrontMatter

	values := map[string]any{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return fm, &ParseError{Msg: err.Error()}
	}

	if len(values) == 0 {
		return fm, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &fm,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fm, errors.Wrap(err, "failed to create the front-matter decoder")
	}

	if err := decoder.Decode(values); err != nil {
		return FrontMatter{}, &ParseError{Msg: err.Error()}
	}

	return fm, nil
}
