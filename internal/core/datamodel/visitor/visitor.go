package visitor

import "time"

type Visitor struct {
	ID               int64      `gorm:"primaryKey"`
	FullName         string     `gorm:"column:full_name;not null"`
	ContactInfo      string     `gorm:"column:contact_info;not null"`
	PurposeOfVisit   string     `gorm:"column:purpose_of_visit;not null"`
	HostEmployeeName string     `gorm:"column:host_employee_name;not null"`
	HostDepartment   string     `gorm:"column:host_department;not null"`
	CompanyName      string     `gorm:"column:company_name"`
	CheckInTime      time.Time  `gorm:"column:check_in_time"`
	CheckOutTime     *time.Time `gorm:"column:check_out_time"`
	PhotoPath        *string    `gorm:"column:photo_path"`
	Status           string     `gorm:"column:status;default:pending"`
}

func (Visitor) TableName() string {
	return "visitors"
}
