// Package errs provides the error kinds shared by every layer of the order ledger.
//
// Failures fall into five kinds and each kind has a sentinel that callers match with
// errors.Is:
//   - validation: ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange
//   - not-found: ErrObjectNotFound
//   - conflict: ErrConflict (already paid, stale version, not yet paid)
//   - external-dependency: ErrExternalDependency (tracking service, payment gateway)
//   - integrity: ErrIntegrity (a compensating action failed and two services disagree)
//
// Each kind is a struct carrying the details of the failure, built with a New...
// constructor and an optional New...WithCause variant. Unwrap returns the sentinel of the
// kind, so domain packages can declare specific failures (ErrAlreadyPaid,
// ErrParcelFetchFailed) that match both themselves and their kind.
package errs
