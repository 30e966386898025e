package model

// Supplier is a procurement partner; purchases reference it.
type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Phone         string `gorm:"type:varchar(32)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}
