// Package services contains stateless domain services coordinating logic
// that does not belong to a single aggregate.
//
// DeliveryFeeCalculator is the checkout gate: it evaluates a delivery zone's
// configuration against the cart and either produces a fee quote or blocks
// order creation with a distinct, operator-actionable error.
package services
