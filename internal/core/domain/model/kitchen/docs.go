// Package kitchen provides the kitchen ticket aggregate tracking per-item
// preparation progress for active orders.
//
// A ticket is opened when its order becomes visible to the kitchen and
// retired when the order leaves the kitchen-active states. Each prep line
// moves pending -> preparing -> ready, strictly forward and one step at a
// time. The ticket's rolled-up status (new, preparing, ready, completed) is
// derived from the lines on every read and never stored, so it cannot drift.
//
// Duplicate submissions of a per-item action are reported as a distinct
// duplicate-action error rather than an illegal transition, letting clients
// treat a double tap differently from a genuinely wrong request.
package kitchen
