package visitor

import (
	"github.com/frahmantamala/visitor-management/internal/core/common/validation"
)

const maxFieldLength = 255

// CreateVisitorDTO represents the request payload for POST /visitors.
type CreateVisitorDTO struct {
	FullName         string `json:"full_name"`
	ContactInfo      string `json:"contact_info"`
	PurposeOfVisit   string `json:"purpose_of_visit"`
	HostEmployeeName string `json:"host_employee_name"`
	HostDepartment   string `json:"host_department"`
	CompanyName      string `json:"company_name,omitempty"`
	Photo            string `json:"photo,omitempty"`
}

func (dto CreateVisitorDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("full_name", dto.FullName).Required().MaxLength(maxFieldLength)
	v.Field("contact_info", dto.ContactInfo).Required().MaxLength(maxFieldLength)
	v.Field("purpose_of_visit", dto.PurposeOfVisit).Required().MaxLength(maxFieldLength)
	v.Field("host_employee_name", dto.HostEmployeeName).Required().MaxLength(maxFieldLength)
	v.Field("host_department", dto.HostDepartment).Required().MaxLength(maxFieldLength)
	v.Field("company_name", dto.CompanyName).MaxLength(maxFieldLength)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type CreateVisitorResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
