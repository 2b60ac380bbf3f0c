// Package actor models who performs an operation: an identity and one of the
// customer, partner or admin roles resolved from a verified credential.
package actor
