package entity

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ToDocument converts a typed record into a field map ready for insertion.
// The identifier is dropped since the store assigns it.
func ToDocument(v interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	delete(doc, FieldID)

	return doc, nil
}

// FromDocument decodes a stored document into a typed record
func FromDocument[T any, PT RecordPtr[T]](id string, raw []byte) (T, error) {
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	PT(&v).Base().ID = id
	return v, nil
}
