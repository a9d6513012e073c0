// Package kernel provides the shared value objects used across the
// fulfillment domain model:
//
//   - UUID: validated entity identifier wrapping github.com/google/uuid
//   - Money: non-negative monetary amount in the smallest currency unit
//   - ShortCode: six-character human-readable order code
//
// All types are immutable value objects. Zero-value UUIDs and ShortCodes are
// invalid and fail Validate; the zero Money is a valid zero amount.
package kernel
