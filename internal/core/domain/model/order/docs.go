// Package order provides the Order aggregate, the authoritative purchase record of the
// ledger, together with its value objects.
//
// The package includes:
//   - Order: identity, line items, shipping address, money fields, payment and delivery
//     state, and the optional reference to an external parcel
//   - LineItem: a catalog snapshot taken when the order is created
//   - Address and AddressPatch: the structured shipping address and a partial update of it
//   - Prices: the four money fields computed once at creation
//   - PaymentResult: gateway identifiers recorded when the order is paid
//   - Status: the lifecycle position derived from the payment and delivery flags
//
// Key business rules:
//   - Line items and money fields never change after creation
//   - paidAt is set iff isPaid, deliveredAt is set iff isDelivered
//   - an order is paid at most once; a second payment is a conflict
//   - delivery requires prior payment unless the caller's DeliveryPolicy says otherwise
//   - the shipping address changes only as one merge of an AddressPatch
package order
