// Package services provides domain services of the shipment lifecycle that do
// not belong to a single aggregate.
//
// The package includes:
//   - TransitionPolicy: the role-aware transition table consulted before any
//     status change is applied to a shipment
package services
