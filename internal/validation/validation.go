// Package validation runs declarative per-field rule sets ahead of any store
// access. Rules are evaluated in declaration order and failures are reported
// as an ordered field-error list, one entry per failing field.
//
// The rules themselves come from ozzo-validation; this package only adds the
// ordering guarantee that ozzo's map-based struct validation does not give.
package validation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/owakeel/golf-music-backend/internal/model"
)

// Field pairs a request field with the rules declared for it.
type Field struct {
	Name  string
	Value interface{}
	Rules []validation.Rule
}

// Run evaluates every field in declaration order. For each failing field the
// first violated rule's message is reported. A nil return means the input is
// valid. Run never touches the store, so a failure has no side effects.
func Run(fields ...Field) []model.FieldError {
	var errs []model.FieldError
	for _, f := range fields {
		if err := validation.Validate(f.Value, f.Rules...); err != nil {
			errs = append(errs, model.FieldError{Field: f.Name, Message: err.Error()})
		}
	}
	return errs
}
