package usecase

import (
	"github.com/ttacon/libphonenumber"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
)

const defaultPhoneRegion = "US"

// NormalizePhone validates a phone number and returns its E.164 form.
func NormalizePhone(raw string) (string, error) {
	parsed, err := libphonenumber.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", domainErrors.ErrInvalidPhone
	}
	if !libphonenumber.IsValidNumber(parsed) {
		return "", domainErrors.ErrInvalidPhone
	}
	return libphonenumber.Format(parsed, libphonenumber.E164), nil
}
