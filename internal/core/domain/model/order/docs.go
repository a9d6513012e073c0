// Package order provides the order aggregate and its status state machine,
// the authoritative record of an order's lifecycle from placement through
// payment, kitchen preparation, delivery, and terminal resolution.
//
// The package includes:
//   - Order: the aggregate root holding frozen items, amounts, the customer
//     snapshot, and the lifecycle status
//   - Status: the state machine enforcing the legal transition graph
//   - Item: an immutable line item with price frozen at order time
//   - PaymentMethod: the payment method deciding the initial status
//
// Key business rules:
//   - finalAmount = subtotal + deliveryFee − discount − walletUsed, never negative
//   - asynchronous payment methods start in PendingPayment; cash (and fully
//     wallet-covered orders) start in Pending
//   - delivered, cancelled, and rejected orders are immutable
//   - every mutation bumps an optimistic version counter; the persistence
//     layer compare-and-sets against the loaded version so concurrent
//     writers are serialized without locks
//
// All writers (customer actions, staff actions, payment callbacks, the
// expiry scheduler) mutate orders exclusively through this aggregate; no
// other component writes the status field.
package order
