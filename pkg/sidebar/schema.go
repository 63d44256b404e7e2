package sidebar

import (
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

const itemsRef = "#/$defs/Items"

// JSONSchema describes the three ways an item can be written: a bare document id, an item object,
// or a single category label mapped to its items.
func (Item) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{
		Type: "string",
		Enum: []any{string(ItemTypeDoc), string(ItemTypeCategory), string(ItemTypeAutogenerated)},
	})
	props.Set("id", &jsonschema.Schema{Type: "string", Description: "document id for doc items"})
	props.Set("label", &jsonschema.Schema{Type: "string"})
	props.Set("dir", &jsonschema.Schema{Type: "string", Description: "content directory for autogenerated items"})
	props.Set("items", &jsonschema.Schema{Ref: itemsRef})

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Description: "document id"},
			{
				Type:                 "object",
				Properties:           props,
				AdditionalProperties: jsonschema.FalseSchema,
			},
			{
				Type:          "object",
				Description:   "category label mapped to its items",
				MinProperties: lo.ToPtr(uint64(1)),
				MaxProperties: lo.ToPtr(uint64(1)),
				PropertyNames: &jsonschema.Schema{
					Not: &jsonschema.Schema{Enum: lo.ToAnySlice(itemFields)},
				},
				AdditionalProperties: &jsonschema.Schema{Ref: itemsRef},
			},
		},
	}
}

// JSONSchema accepts a list of items, or a map from category labels to their items.
func (Items) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "array", Items: Item{}.JSONSchema()},
			{Type: "object", AdditionalProperties: &jsonschema.Schema{Ref: itemsRef}},
			{Type: "null"},
		},
	}
}
