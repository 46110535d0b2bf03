// Package models defines the data types persisted by signbook.
package models

// Record is a user record: who signed, where they live, and the raw bytes
// of the uploaded signature image.
type Record struct {
	// ID is assigned by the store on creation and never reused.
	ID int64

	FullName string
	Address  string

	// Signature holds PNG or JPEG bytes. The store treats them as opaque.
	Signature []byte
}
