// Package order provides the Order aggregate of the shop: the order header, its
// line items with captured unit prices, and the status state machine.
//
// The package includes:
//   - Order: The aggregate root that owns the header, line items, and lifecycle
//   - LineItem: A product line with quantity and unit price snapshot
//   - Status: The lifecycle state machine
//   - Event: Domain events recorded on creation, cancellation, and status changes
//
// Key business rules:
//   - An order is created in Pending status together with all of its line items
//   - The total equals the sum of the line item subtotals and never changes
//   - Status moves forward one step at a time: Pending -> Processing -> Shipped -> Delivered
//   - Only Pending and Processing orders can be cancelled
//   - Cancelled and Delivered are terminal
package order
