// Package kernel holds the value objects shared by every aggregate of the order ledger.
package kernel
