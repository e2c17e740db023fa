// Package product provides the Product aggregate: a catalog entry with a unit
// price and a stock counter.
//
// Key business rules:
//   - Price is an integer amount in the smallest currency unit and is never negative
//   - Stock is never negative: Reserve refuses quantities above the current stock
//   - Stock changes only through Reserve and Release, which the inventory ledger
//     calls inside the transaction of an order operation
//   - Changing the price never touches stock and never rewrites past orders, which
//     keep the unit price captured at reservation time
package product
