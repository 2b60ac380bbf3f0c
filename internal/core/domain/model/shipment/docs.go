// Package shipment contains the shipment aggregate and its ledger event.
//
// A Shipment owns its status, addresses, items and pickup window; an Event is
// the immutable record of one accepted status change (or a pickup booking,
// which keeps the status). Events are created unsequenced by the aggregate and
// receive their per-shipment sequence from the event ledger on append.
//
// The aggregate protects structural invariants only (valid statuses, no
// self-transitions, version increments). Role-based rules live in
// services.TransitionPolicy so the whole transition table sits in one place.
package shipment
