package httpx

import "regexp"

// NopMasker leaves input untouched.
type NopMasker struct{}

// Mask implements Masker.
func (NopMasker) Mask(input []byte) []byte {
	return input
}

var phoneNumberPattern = regexp.MustCompile(`\b(0)\d{5,8}(\d{3})\b`)

// PhoneNumberMasker hides all but the leading zero and the last three digits
// of every local phone number.
type PhoneNumberMasker struct{}

// Mask implements Masker.
func (PhoneNumberMasker) Mask(input []byte) []byte {
	return phoneNumberPattern.ReplaceAll(input, []byte("${1}*****${2}"))
}
