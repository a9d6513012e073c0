package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod identifies how a customer pays for an order. The method
// decides the order's initial status: methods that settle asynchronously
// start in PendingPayment and are subject to the payment expiry deadline;
// cash settles on delivery and starts in Pending directly.
type PaymentMethod int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown PaymentMethod = iota

	// PaymentCash is cash on delivery; no asynchronous confirmation exists.
	PaymentCash

	// PaymentCard is an online card payment confirmed by a gateway callback.
	PaymentCard

	// PaymentBankTransfer is a bank transfer confirmed asynchronously.
	PaymentBankTransfer

	// PaymentMobileWallet is a mobile wallet payment confirmed by callback.
	PaymentMobileWallet
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		PaymentCash:         "cash",
		PaymentCard:         "card",
		PaymentBankTransfer: "bank_transfer",
		PaymentMobileWallet: "mobile_wallet",
	}
}

// Validate checks that the method is one of the defined payment methods.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", int(m)))
	}
	return nil
}

// String returns the wire name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethodFromString parses a wire payment method name.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// SettlesImmediately reports whether the method requires no asynchronous
// payment confirmation before the order may enter the kitchen queue.
func (m PaymentMethod) SettlesImmediately() bool {
	return m == PaymentCash
}
