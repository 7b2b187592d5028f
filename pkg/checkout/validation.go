package checkout

import (
	"fmt"
	"regexp"
	"strings"

	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
)

var (
	lettersRe = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^[\d\s\-()+]+$`)
	digitsRe  = regexp.MustCompile(`[\s\-()+]`)
	postalRe  = regexp.MustCompile(`^\d{4,8}$`)
)

// BuyerForm carries the checkout form fields as submitted, before trimming.
type BuyerForm struct {
	Name       string `json:"nombre" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"telefono" validate:"required"`
	Address    string `json:"direccion" validate:"required"`
	City       string `json:"ciudad" validate:"required"`
	PostalCode string `json:"codigoPostal" validate:"required"`
}

// Normalized returns the form with every field trimmed and the email lowercased.
func (f BuyerForm) Normalized() BuyerForm {
	return BuyerForm{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:      strings.TrimSpace(f.Phone),
		Address:    strings.TrimSpace(f.Address),
		City:       strings.TrimSpace(f.City),
		PostalCode: strings.TrimSpace(f.PostalCode),
	}
}

// ValidateBuyerForm checks every field and returns a validation error carrying
// a per-field details map, or nil when the form is acceptable.
func ValidateBuyerForm(form BuyerForm) error {
	details := map[string]string{}

	if msg := validateLetters("name", form.Name, 2, 50); msg != "" {
		details["nombre"] = msg
	}
	if msg := ValidateEmail(form.Email); msg != "" {
		details["email"] = msg
	}
	if msg := ValidatePhone(form.Phone); msg != "" {
		details["telefono"] = msg
	}
	if msg := ValidateAddress(form.Address); msg != "" {
		details["direccion"] = msg
	}
	if msg := validateLetters("city", form.City, 2, 0); msg != "" {
		details["ciudad"] = msg
	}
	if msg := ValidatePostalCode(form.PostalCode); msg != "" {
		details["codigoPostal"] = msg
	}

	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "checkout form validation failed").WithDetails(details)
}

// ValidateName checks the buyer name field.
func ValidateName(name string) string {
	return validateLetters("name", name, 2, 50)
}

// ValidateCity checks the buyer city field.
func ValidateCity(city string) string {
	return validateLetters("city", city, 2, 0)
}

func validateLetters(field, value string, minLen, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Sprintf("%s is required", field)
	}
	if len([]rune(trimmed)) < minLen {
		return fmt.Sprintf("%s must have at least %d characters", field, minLen)
	}
	if maxLen > 0 && len([]rune(trimmed)) > maxLen {
		return fmt.Sprintf("%s must have at most %d characters", field, maxLen)
	}
	if !lettersRe.MatchString(trimmed) {
		return fmt.Sprintf("%s may only contain letters and spaces", field)
	}
	return ""
}

// ValidateEmail requires a single @ with a dot after it and no whitespace.
func ValidateEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "email is required"
	}
	if !emailRe.MatchString(trimmed) {
		return "email must be a valid address"
	}
	return ""
}

// ValidatePhone allows digits plus common separators; after stripping
// separators the number must be 8 to 15 digits long.
func ValidatePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return "phone is required"
	}
	if !phoneRe.MatchString(trimmed) {
		return "phone may only contain digits, spaces, dashes and parentheses"
	}
	digits := digitsRe.ReplaceAllString(trimmed, "")
	if len(digits) < 8 || len(digits) > 15 {
		return "phone must have between 8 and 15 digits"
	}
	return ""
}

// ValidateAddress requires a trimmed length between 5 and 100.
func ValidateAddress(address string) string {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "address is required"
	}
	if len([]rune(trimmed)) < 5 {
		return "address must have at least 5 characters"
	}
	if len([]rune(trimmed)) > 100 {
		return "address must have at most 100 characters"
	}
	return ""
}

// ValidatePostalCode requires 4 to 8 digits, nothing else.
func ValidatePostalCode(postalCode string) string {
	trimmed := strings.TrimSpace(postalCode)
	if trimmed == "" {
		return "postal code is required"
	}
	if !postalRe.MatchString(trimmed) {
		return "postal code must have between 4 and 8 digits"
	}
	return ""
}
