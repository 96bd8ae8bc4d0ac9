// Package services provides stateless domain services of the order ledger.
//
// The package includes:
//   - PriceCalculator: derives the four money fields of an order from its line items
//   - PaymentSigner: computes and verifies gateway payment signatures
//
// Both are pure: the same input always produces the same output and nothing is read
// from or written to storage.
package services
