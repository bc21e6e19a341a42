// internal/domain/entity/descriptor.go
package entity

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FieldType mirrors the input kinds a form can render
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
)

// DateLayout is the format date fields are stored in
const DateLayout = "2006-01-02"

// FieldDef describes one editable field of a record kind. Integer restricts
// a number field to whole values.
type FieldDef struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Integer     bool      `json:"integer,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Column describes one list column
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

// Descriptor drives validation, list/form rendering and export for one
// record kind.
type Descriptor struct {
	Collection  string     `json:"collection"`
	DisplayName string     `json:"displayName"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Fields      []FieldDef `json:"fields"`
	Columns     []Column   `json:"columns"`
}

// Field looks up a field definition by name
func (d Descriptor) Field(name string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// DomainFields returns the fields specific to this kind, excluding quote and cost.
func (d Descriptor) DomainFields() []FieldDef {
	out := make([]FieldDef, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == FieldCustomerQuote || f.Name == FieldSupplierCost {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Validate checks a full document before insertion
func (d Descriptor) Validate(doc map[string]interface{}) error {
	for _, f := range d.Fields {
		value, present := doc[f.Name]
		if !present {
			if f.Required {
				return fmt.Errorf("%w: %s is required", ErrInvalidRecord, f.Name)
			}
			continue
		}
		if err := f.check(value, f.Required); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePatch checks a partial update. Only known fields may be set and
// the identifier and timestamps are never writable.
func (d Descriptor) ValidatePatch(patch Patch) error {
	if len(patch) == 0 {
		return fmt.Errorf("%w: empty update", ErrInvalidRecord)
	}
	for name, value := range patch {
		switch name {
		case FieldID, "id", FieldCreatedAt, FieldUpdatedAt:
			return fmt.Errorf("%w: %s cannot be updated", ErrInvalidRecord, name)
		}
		f, ok := d.Field(name)
		if !ok {
			return fmt.Errorf("%w: unknown field %s for %s", ErrInvalidRecord, name, d.Collection)
		}
		if err := f.check(value, f.Required); err != nil {
			return err
		}
	}
	return nil
}

func (f FieldDef) check(value interface{}, required bool) error {
	switch f.Type {
	case FieldNumber:
		n, ok := AsFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidRecord, f.Name)
		}
		if n < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidRecord, f.Name)
		}
		if f.Integer && n != math.Trunc(n) {
			return fmt.Errorf("%w: %s must be a whole number", ErrInvalidRecord, f.Name)
		}
	default:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidRecord, f.Name)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			if required {
				return fmt.Errorf("%w: %s is required", ErrInvalidRecord, f.Name)
			}
			return nil
		}
		if f.Type == FieldDate {
			if _, err := time.Parse(DateLayout, s); err != nil {
				return fmt.Errorf("%w: %s must be a date in YYYY-MM-DD form", ErrInvalidRecord, f.Name)
			}
		}
	}
	return nil
}

// Normalize converts whole-number values of integer fields to int64 so they
// are stored with an integer type
func (d Descriptor) Normalize(fields map[string]interface{}) {
	for name, value := range fields {
		f, ok := d.Field(name)
		if !ok || !f.Integer {
			continue
		}
		if n, ok := AsFloat(value); ok && n == math.Trunc(n) {
			fields[name] = int64(n)
		}
	}
}

// AsFloat converts the numeric types BSON and JSON decoding produce
func AsFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
