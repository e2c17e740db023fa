// Package kernel holds the shared value objects of the shop domain model.
//
// UUID identifies every aggregate and entity (products, orders, line items) and
// the buyers that place orders. Its zero value is invalid, so an identifier that
// was never assigned is caught by Validate instead of being persisted as nil.
package kernel
