package account

import "artisan/pkg/validation"

func validatePhone(phone string) error {
	return validation.Var("phone number", phone, "required,phone")
}

func validateOTP(otp string) error {
	return validation.Var("otp", otp, "digits=4")
}
