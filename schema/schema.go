// Package schema parses declarative store definitions from YAML.
//
// A schema file lists resources, their primary key fields, and their
// hasMany relationships:
//
//	resources:
//	  - name: post
//	    hasMany:
//	      - related: comment
//	        foreignKey: postId
//	      - related: tag
//	        localKeys: tagIds
//	        localField: tags
//	  - name: comment
//	  - name: tag
//
// Parse the file and apply it to a store:
//
//	sc, err := schema.Parse(data)
//	if err != nil { ... }
//	if err := store.ApplySchema(sc); err != nil { ... }
//
// Relationship key options follow the same priority as the builder API:
// foreignKey wins over localKeys, which win over foreignKeys, and a
// foreign key is synthesized when none is given.
package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Sistemium/js-data/schema/relation"
)

// ErrInvalidSchema is returned when a schema document is structurally
// invalid.
var ErrInvalidSchema = errors.New("jsdata: invalid schema")

// InvalidSchemaError reports a structurally invalid schema document.
type InvalidSchemaError struct {
	Reason string
}

// Error returns the error string.
func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("jsdata: invalid schema: %s", e.Reason)
}

// Is reports whether the target error matches InvalidSchemaError.
func (e *InvalidSchemaError) Is(err error) bool {
	return err == ErrInvalidSchema
}

// Schema is a parsed store definition.
type Schema struct {
	Resources []ResourceDef `yaml:"resources"`
}

// ResourceDef defines one resource.
type ResourceDef struct {
	Name    string       `yaml:"name"`
	IDField string       `yaml:"idField"`
	HasMany []HasManyDef `yaml:"hasMany"`
}

// HasManyDef defines one hasMany relationship of a resource.
type HasManyDef struct {
	Related     string `yaml:"related"`
	LocalField  string `yaml:"localField"`
	ForeignKey  string `yaml:"foreignKey"`
	LocalKeys   string `yaml:"localKeys"`
	ForeignKeys string `yaml:"foreignKeys"`
	Enumerable  bool   `yaml:"enumerable"`
	Link        *bool  `yaml:"link"`
}

// Builder converts the definition into a relationship builder.
func (d HasManyDef) Builder() *relation.HasManyBuilder {
	b := relation.HasMany()
	if d.LocalField != "" {
		b.LocalField(d.LocalField)
	}
	if d.ForeignKey != "" {
		b.ForeignKey(d.ForeignKey)
	}
	if d.LocalKeys != "" {
		b.LocalKeys(d.LocalKeys)
	}
	if d.ForeignKeys != "" {
		b.ForeignKeys(d.ForeignKeys)
	}
	if d.Enumerable {
		b.Enumerable()
	}
	if d.Link != nil {
		b.Link(*d.Link)
	}
	return b
}

// Parse decodes and validates a YAML schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("jsdata: parsing schema: %w", err)
	}
	seen := make(map[string]bool, len(s.Resources))
	for _, def := range s.Resources {
		if def.Name == "" {
			return nil, &InvalidSchemaError{Reason: "resource without a name"}
		}
		if seen[def.Name] {
			return nil, &InvalidSchemaError{Reason: fmt.Sprintf("resource %q defined twice", def.Name)}
		}
		seen[def.Name] = true
		for _, hm := range def.HasMany {
			if hm.Related == "" {
				return nil, &InvalidSchemaError{
					Reason: fmt.Sprintf("resource %q: hasMany without a related resource", def.Name),
				}
			}
		}
	}
	return &s, nil
}
