package validation

import (
	"testing"

	"github.com/partsearch/partsearch/errors"
)

type sampleInput struct {
	PartNumber string  `json:"partNumber" validate:"required,max=64"`
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"gte=0"`
}

func TestValidate_Struct(t *testing.T) {
	tests := []struct {
		name    string
		input   sampleInput
		wantErr bool
	}{
		{"valid", sampleInput{PartNumber: "PN-100", Name: "Bolt", Price: 1.5, Quantity: 3}, false},
		{"missing part number", sampleInput{Name: "Bolt"}, true},
		{"negative price", sampleInput{PartNumber: "PN-100", Name: "Bolt", Price: -1}, true},
		{"negative quantity", sampleInput{PartNumber: "PN-100", Name: "Bolt", Quantity: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				appErr, ok := errors.AsAppError(err)
				if !ok {
					t.Fatal("expected *errors.AppError")
				}
				if appErr.Code != errors.ErrCodeInvalidInput {
					t.Errorf("expected code %s, got %s", errors.ErrCodeInvalidInput, appErr.Code)
				}
				if appErr.HTTPStatus != 400 {
					t.Errorf("expected HTTP 400, got %d", appErr.HTTPStatus)
				}
			}
		})
	}
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	err := Validate(sampleInput{Name: "Bolt"})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected []FieldError details, got %T", appErr.Details["fields"])
	}
	if fields[0].Field != "partNumber" {
		t.Errorf("expected json tag name partNumber, got %q", fields[0].Field)
	}
}

func TestFluentValidator(t *testing.T) {
	v := New().
		Required("name", "").
		NonNegative("price", -2.5).
		Min("quantity", -1, 0).
		OneOf("status", "archived", []string{"active", "inactive"})

	if !v.HasErrors() {
		t.Fatal("expected errors")
	}
	if len(v.Errors()) != 4 {
		t.Fatalf("expected 4 field errors, got %d", len(v.Errors()))
	}

	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", errors.ErrCodeInvalidInput, appErr.Code)
	}
}

func TestFluentValidator_NoErrors(t *testing.T) {
	v := New().Required("name", "Bolt").NonNegative("price", 0)
	if v.HasErrors() {
		t.Errorf("unexpected errors: %v", v.Errors())
	}
	if v.Validate() != nil {
		t.Error("expected nil AppError")
	}
}

func TestValidateUUID(t *testing.T) {
	if _, err := ValidateUUID("id", ""); err == nil {
		t.Error("expected error for empty id")
	}
	if _, err := ValidateUUID("id", "not-a-uuid"); err == nil {
		t.Error("expected error for malformed id")
	}
	if _, err := ValidateUUID("id", "0a04ff5c-96ad-47cc-8c41-cf4d118dc1a0"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
