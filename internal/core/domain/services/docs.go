// Package services contains pure domain services for parcel routing: record
// normalization, department reference resolution, weight-bucket rule
// evaluation, and the assignment precedence chain that ties them together.
// The services hold no state beyond their configuration and perform storage
// access only through the narrow DepartmentLookup port.
package services
