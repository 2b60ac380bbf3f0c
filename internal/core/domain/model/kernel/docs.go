// Package kernel provides the identifiers shared across the shipment domain.
//
// The package includes:
//   - UUID: internal identifier of shipments, events, actors and outbox messages
//   - TrackingCode: public identifier handed to customers for anonymous tracking
//
// Both are immutable value objects whose zero value fails Validate.
package kernel
