// Package order provides the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: aggregate root holding the customer, the item snapshots and the status
//   - Status: the lifecycle state machine
//   - Number: the public 6-digit order number
//   - Item: a dish line with the price captured at creation time
//
// Key business rules:
//   - an order belongs to one branch, fixed at creation
//   - totalCents is computed once from the item snapshots and never recomputed
//   - status follows PENDING -> ACCEPTED -> PREPARING -> READY -> [OUT_FOR_DELIVERY ->] COMPLETED,
//     and any non-terminal status may move to CANCELED
//   - COMPLETED and CANCELED are terminal
//   - cancellation requires a reason
package order
