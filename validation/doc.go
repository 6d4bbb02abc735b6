// Package validation provides input validation for partsearch.
//
// Struct validation uses go-playground/validator tags:
//
//	type CreatePartInput struct {
//	    Name  string  `json:"name" validate:"required,max=255"`
//	    Price float64 `json:"price" validate:"gte=0"`
//	}
//	if err := validation.Validate(input); err != nil { ... }
//
// The fluent Validator collects field errors for hand-rolled guards.
// Both surface failures as *errors.AppError.
package validation
