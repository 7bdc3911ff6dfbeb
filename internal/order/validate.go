package order

import (
	"fmt"
	"regexp"
	"strings"
)

// Bangladeshi mobile numbers: 11 digits, 01 prefix, operator digit 3-9.
var bdMobileRegex = regexp.MustCompile(`^01[3-9]\d{8}$`)

func validateCustomer(info CustomerInfo) error {
	if strings.TrimSpace(info.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !strings.Contains(info.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if !bdMobileRegex.MatchString(info.Phone) {
		return fmt.Errorf("%w: phone must be a valid Bangladeshi mobile number", ErrValidation)
	}
	if strings.TrimSpace(info.Address) == "" {
		return fmt.Errorf("%w: delivery address is required", ErrValidation)
	}
	return nil
}

func validatePayment(pay PaymentDetails) error {
	switch pay.Method {
	case PaymentCOD:
		return nil
	case PaymentBkash:
		if !bdMobileRegex.MatchString(pay.BkashNumber) {
			return fmt.Errorf("%w: bkash number must be a valid Bangladeshi mobile number", ErrValidation)
		}
		if strings.TrimSpace(pay.BkashTxID) == "" {
			return fmt.Errorf("%w: bkash transaction id is required", ErrValidation)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported payment method %q", ErrValidation, pay.Method)
	}
}
