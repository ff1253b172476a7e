package validation

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/visitor-management/internal"
)

// Rule inspects one string value. A non-empty message marks it invalid.
type Rule func(value string) (message string, code errors.ErrorCode)

type field struct {
	name  string
	value string
	rules []Rule
}

// Builder collects field rules and reports every failing field at once.
type Builder struct {
	fields []*field
}

func NewValidator() *Builder {
	return &Builder{}
}

// Field registers a value; rules chained on the result run in order, stopping at the first failure.
func (b *Builder) Field(name, value string) *FieldRules {
	f := &field{name: name, value: value}
	b.fields = append(b.fields, f)
	return &FieldRules{f: f}
}

type FieldRules struct {
	f *field
}

func (r *FieldRules) add(rule Rule) *FieldRules {
	r.f.rules = append(r.f.rules, rule)
	return r
}

func (r *FieldRules) Required() *FieldRules {
	name := r.f.name
	return r.add(func(v string) (string, errors.ErrorCode) {
		if strings.TrimSpace(v) == "" {
			return name + " is required", errors.ErrCodeValidationFailed
		}
		return "", ""
	})
}

func (r *FieldRules) MaxLength(limit int) *FieldRules {
	name := r.f.name
	return r.add(func(v string) (string, errors.ErrorCode) {
		if len(v) > limit {
			return fmt.Sprintf("%s must not exceed %d characters", name, limit), errors.ErrCodeValidationFailed
		}
		return "", ""
	})
}

// OneOf accepts the empty string; pair it with Required when the field is mandatory.
func (r *FieldRules) OneOf(code errors.ErrorCode, allowed ...string) *FieldRules {
	name := r.f.name
	return r.add(func(v string) (string, errors.ErrorCode) {
		if v == "" {
			return "", ""
		}
		for _, a := range allowed {
			if v == a {
				return "", ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(allowed, ", ")), code
	})
}

func (r *FieldRules) Custom(rule Rule) *FieldRules {
	return r.add(rule)
}

// Validate returns nil or a validation AppError carrying one entry per failing field.
func (b *Builder) Validate() *errors.AppError {
	var failed []errors.ValidationError
	for _, f := range b.fields {
		for _, rule := range f.rules {
			if msg, code := rule(f.value); msg != "" {
				failed = append(failed, errors.ValidationError{Field: f.name, Message: msg, Code: string(code)})
				break
			}
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: failed})
}
