package visitor

import (
	"time"

	visitorDatamodel "github.com/frahmantamala/visitor-management/internal/core/datamodel/visitor"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Visitor struct {
	ID               int64      `json:"id"`
	FullName         string     `json:"full_name"`
	ContactInfo      string     `json:"contact_info"`
	PurposeOfVisit   string     `json:"purpose_of_visit"`
	HostEmployeeName string     `json:"host_employee_name"`
	HostDepartment   string     `json:"host_department"`
	CompanyName      string     `json:"company_name"`
	CheckInTime      time.Time  `json:"check_in_time"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	PhotoPath        *string    `json:"photo_path"`
	Status           Status     `json:"status"`
}

// Summary is the listing projection returned by GET /visitors.
type Summary struct {
	ID               int64   `json:"id"`
	FullName         string  `json:"full_name"`
	ContactInfo      string  `json:"contact_info"`
	PurposeOfVisit   string  `json:"purpose_of_visit"`
	HostEmployeeName string  `json:"host_employee_name"`
	Status           Status  `json:"status"`
	PhotoPath        *string `json:"photo_path"`
}

func (v *Visitor) HasPhoto() bool {
	return v.PhotoPath != nil
}

func (v *Visitor) ToSummary() Summary {
	return Summary{
		ID:               v.ID,
		FullName:         v.FullName,
		ContactInfo:      v.ContactInfo,
		PurposeOfVisit:   v.PurposeOfVisit,
		HostEmployeeName: v.HostEmployeeName,
		Status:           v.Status,
		PhotoPath:        v.PhotoPath,
	}
}

func NewVisitor(dto CreateVisitorDTO, photoPath *string) *Visitor {
	return &Visitor{
		FullName:         dto.FullName,
		ContactInfo:      dto.ContactInfo,
		PurposeOfVisit:   dto.PurposeOfVisit,
		HostEmployeeName: dto.HostEmployeeName,
		HostDepartment:   dto.HostDepartment,
		CompanyName:      dto.CompanyName,
		CheckInTime:      time.Now().UTC(),
		PhotoPath:        photoPath,
		Status:           StatusPending,
	}
}

func ToDataModel(v *Visitor) *visitorDatamodel.Visitor {
	return &visitorDatamodel.Visitor{
		ID:               v.ID,
		FullName:         v.FullName,
		ContactInfo:      v.ContactInfo,
		PurposeOfVisit:   v.PurposeOfVisit,
		HostEmployeeName: v.HostEmployeeName,
		HostDepartment:   v.HostDepartment,
		CompanyName:      v.CompanyName,
		CheckInTime:      v.CheckInTime,
		CheckOutTime:     v.CheckOutTime,
		PhotoPath:        v.PhotoPath,
		Status:           string(v.Status),
	}
}

func FromDataModel(v *visitorDatamodel.Visitor) *Visitor {
	return &Visitor{
		ID:               v.ID,
		FullName:         v.FullName,
		ContactInfo:      v.ContactInfo,
		PurposeOfVisit:   v.PurposeOfVisit,
		HostEmployeeName: v.HostEmployeeName,
		HostDepartment:   v.HostDepartment,
		CompanyName:      v.CompanyName,
		CheckInTime:      v.CheckInTime,
		CheckOutTime:     v.CheckOutTime,
		PhotoPath:        v.PhotoPath,
		Status:           Status(v.Status),
	}
}

func FromDataModelSlice(visitors []*visitorDatamodel.Visitor) []*Visitor {
	result := make([]*Visitor, len(visitors))
	for i, v := range visitors {
		result[i] = FromDataModel(v)
	}
	return result
}
