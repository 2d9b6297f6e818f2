// Package kernel holds the value objects shared by every aggregate of the
// order service:
//   - UUID: identifier of orders and actor profiles
//   - Money: non-negative decimal amount with two-place rounding for display
package kernel
