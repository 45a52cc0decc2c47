// Package queries contains read-only operations of the CQRS architecture.
//
// Availability queries resolve through the domain resolver over repositories
// obtained from a unit of work that is never begun, so every read uses its
// own connection. Order listing goes to the database directly with SQL, the
// same way reporting queries bypass the aggregates.
package queries
