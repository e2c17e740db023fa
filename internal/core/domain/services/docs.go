// Package services provides domain services that coordinate business operations
// spanning more than one aggregate of the shop.
//
// The package includes:
//   - InventoryLedger: the only path through which product stock changes
//
// The ledger works on a ProductRepository bound to the caller's transaction, so
// its effects become visible only when that transaction commits.
package services
