// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles: the
// editor, storage backends and handlers all import types without depending
// on each other.
package types

// Student is one row of the students table.
//
// ID is assigned by the store on insert and never changes afterwards.
// Name and Email carry validate:"required" because every record created or
// updated through the editor or the API must have them. The stores
// themselves do not enforce this. Course may be empty.
//
// "required" on a string only rejects "", so a whitespace-only name is
// accepted.
type Student struct {
	ID     int64  `json:"id"     yaml:"id"`
	Name   string `json:"name"   yaml:"name"   validate:"required"`
	Email  string `json:"email"  yaml:"email"  validate:"required"`
	Course string `json:"course" yaml:"course"`
}
