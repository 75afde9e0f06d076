package model

import (
	"strings"
	"time"

	"pos-admin-api/pkg/apierror"
)

// Outlet is a store location.
type Outlet struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Address   string     `json:"address,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the fields required to create an outlet.
func (o Outlet) Validate() []apierror.FieldError {
	var errs []apierror.FieldError
	if strings.TrimSpace(o.Name) == "" {
		errs = append(errs, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(o.Address) == "" {
		errs = append(errs, apierror.FieldError{Field: "address", Message: "address is required"})
	}
	return errs
}
