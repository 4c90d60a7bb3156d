// Package validation checks request and option structs.
//
// Struct tags cover most input (the custom "langcode" tag accepts codes
// such as fr or en-US):
//
//	type Options struct {
//	    Language string `json:"language" validate:"required,langcode"`
//	}
//	err := validation.Validate(opts)
//
// Validator collects programmatic checks:
//
//	err := validation.New().Required("text", req.Text).OneOf("sector", s, sectors).Validate()
//
// Both return INVALID_INPUT AppErrors with the failing fields in Details["fields"].
package validation
