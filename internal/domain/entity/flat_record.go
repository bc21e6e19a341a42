package entity

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
)

// FieldValue is one domain field carried verbatim from the stored document
type FieldValue struct {
	Name  string
	Value interface{}
}

// FlatRecord is a record of any kind flattened for listing, aggregation and export
type FlatRecord struct {
	Collection  string
	ServiceType string
	BaseRecord
	Fields []FieldValue
}

// Field returns the value of a domain field
func (r FlatRecord) Field(name string) (interface{}, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders the record as one flat object with the derived profit
func (r FlatRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Fields)+8)
	for _, f := range r.Fields {
		out[f.Name] = f.Value
	}
	out["id"] = r.ID
	out["serviceType"] = r.ServiceType
	out[FieldCreatedAt] = r.CreatedAt
	out[FieldUpdatedAt] = r.UpdatedAt
	out[FieldCustomerQuote] = r.CustomerQuote
	out[FieldSupplierCost] = r.SupplierCost
	out["profit"] = r.Profit()
	return json.Marshal(out)
}

// Flatten decodes a stored document into a FlatRecord using the descriptor's
// field list.
func Flatten(d Descriptor, id string, raw []byte) (FlatRecord, error) {
	var base BaseRecord
	if err := bson.Unmarshal(raw, &base); err != nil {
		return FlatRecord{}, err
	}
	base.ID = id

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return FlatRecord{}, err
	}

	domain := d.DomainFields()
	fields := make([]FieldValue, 0, len(domain))
	for _, f := range domain {
		fields = append(fields, FieldValue{Name: f.Name, Value: doc[f.Name]})
	}

	return FlatRecord{
		Collection:  d.Collection,
		ServiceType: d.DisplayName,
		BaseRecord:  base,
		Fields:      fields,
	}, nil
}
