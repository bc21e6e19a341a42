// internal/domain/entity/record.go
package entity

// Base field names shared by every collection
const (
	FieldID            = "_id"
	FieldCreatedAt     = "createdAt"
	FieldUpdatedAt     = "updatedAt"
	FieldCustomerQuote = "customerQuote"
	FieldSupplierCost  = "supplierCost"
)

// BaseRecord holds the fields every service record carries.
// CreatedAt and UpdatedAt are milliseconds since epoch.
type BaseRecord struct {
	ID            string  `json:"id,omitempty" bson:"_id,omitempty"`
	CreatedAt     int64   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64   `json:"updatedAt" bson:"updatedAt"`
	CustomerQuote float64 `json:"customerQuote" bson:"customerQuote"`
	SupplierCost  float64 `json:"supplierCost" bson:"supplierCost"`
}

// Base gives generic code access to the embedded base fields
func (b *BaseRecord) Base() *BaseRecord {
	return b
}

// Profit is always derived, never stored
func (b BaseRecord) Profit() float64 {
	return b.CustomerQuote - b.SupplierCost
}

// Quote returns the customer-facing amount
func (b BaseRecord) Quote() float64 {
	return b.CustomerQuote
}

// Cost returns the supplier amount
func (b BaseRecord) Cost() float64 {
	return b.SupplierCost
}

// Record is implemented by pointers to every record variant
type Record interface {
	Base() *BaseRecord
	Profit() float64
}

// RecordPtr constrains a type parameter to a pointer to T implementing Record.
type RecordPtr[T any] interface {
	*T
	Record
}

// Patch is a partial update keyed by field name
type Patch map[string]interface{}
