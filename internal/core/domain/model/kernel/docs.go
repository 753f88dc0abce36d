// Package kernel contains shared value objects used by every aggregate in the
// domain model: validated UUIDs for entity identity and geographic locations
// for courier position reports.
//
// All types in this package are immutable value objects. Their zero values are
// invalid; instances must be created through the provided constructors, which
// enforce the validation rules. This follows the constructor guard approach
// used throughout the domain model.
package kernel
