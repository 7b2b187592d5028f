package checkout

import (
	"testing"

	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
)

func validForm() BuyerForm {
	return BuyerForm{
		Name:       "María López",
		Email:      "maria@example.com",
		Phone:      "+54 (011) 4567-8901",
		Address:    "Av. Corrientes 1234",
		City:       "Buenos Aires",
		PostalCode: "1043",
	}
}

func TestValidateBuyerFormAccepts(t *testing.T) {
	t.Parallel()

	if err := ValidateBuyerForm(validForm()); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestValidateBuyerFormCollectsFieldErrors(t *testing.T) {
	t.Parallel()

	form := BuyerForm{
		Name:       "X",
		Email:      "not-an-email",
		Phone:      "123",
		Address:    "abc",
		City:       "C1ty",
		PostalCode: "123",
	}

	err := ValidateBuyerForm(form)
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	for _, field := range []string{"nombre", "email", "telefono", "direccion", "ciudad", "codigoPostal"} {
		if details[field] == "" {
			t.Fatalf("expected error for field %s, details=%v", field, details)
		}
	}
}

func TestValidateNameRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"accented letters", "José Ñandú", true},
		{"empty", "  ", false},
		{"too short", "A", false},
		{"digits", "John 3rd", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := ValidateName(tc.value)
			if tc.ok && msg != "" {
				t.Fatalf("expected %q to pass, got %q", tc.value, msg)
			}
			if !tc.ok && msg == "" {
				t.Fatalf("expected %q to fail", tc.value)
			}
		})
	}
}

func TestValidatePhoneStripsSeparators(t *testing.T) {
	t.Parallel()

	if msg := ValidatePhone("(011) 4567-8901"); msg != "" {
		t.Fatalf("expected separators to be stripped, got %q", msg)
	}
	if msg := ValidatePhone("12-34"); msg == "" {
		t.Fatal("expected too-short phone to fail")
	}
	if msg := ValidatePhone("1234567890123456"); msg == "" {
		t.Fatal("expected too-long phone to fail")
	}
	if msg := ValidatePhone("phone#123"); msg == "" {
		t.Fatal("expected invalid characters to fail")
	}
}

func TestValidateEmailShape(t *testing.T) {
	t.Parallel()

	if msg := ValidateEmail("a@b.co"); msg != "" {
		t.Fatalf("expected simple email to pass, got %q", msg)
	}
	for _, bad := range []string{"", "a@b", "a b@c.com", "nope"} {
		if msg := ValidateEmail(bad); msg == "" {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestValidatePostalCodeDigitsOnly(t *testing.T) {
	t.Parallel()

	if msg := ValidatePostalCode("12345678"); msg != "" {
		t.Fatalf("expected 8 digits to pass, got %q", msg)
	}
	for _, bad := range []string{"123", "123456789", "12a4"} {
		if msg := ValidatePostalCode(bad); msg == "" {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestNormalizedLowercasesEmail(t *testing.T) {
	t.Parallel()

	form := BuyerForm{Email: "  MARIA@Example.COM ", Name: " María "}
	got := form.Normalized()
	if got.Email != "maria@example.com" {
		t.Fatalf("unexpected email %q", got.Email)
	}
	if got.Name != "María" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}
