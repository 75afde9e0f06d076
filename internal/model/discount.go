package model

import (
	"strings"
	"time"

	"pos-admin-api/pkg/apierror"
)

// Discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Discount is a price reduction that outlets can apply at checkout.
type Discount struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Type        string     `json:"type,omitempty"`
	Value       float64    `json:"value,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the fields required to create a discount.
func (d Discount) Validate() []apierror.FieldError {
	var errs []apierror.FieldError
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	switch d.Type {
	case DiscountPercentage:
		if d.Value <= 0 || d.Value > 100 {
			errs = append(errs, apierror.FieldError{Field: "value", Message: "percentage must be in (0, 100]"})
		}
	case DiscountFixed:
		if d.Value <= 0 {
			errs = append(errs, apierror.FieldError{Field: "value", Message: "value must be positive"})
		}
	default:
		errs = append(errs, apierror.FieldError{Field: "type", Message: "type must be percentage or fixed"})
	}
	return errs
}
