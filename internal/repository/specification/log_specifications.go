package specification

import "gorm.io/gorm"

// ByRole filters conversation entries by role.
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// Latest selects the newest Limit rows by id, newest first. Repositories
// reverse the result to restore write order.
type Latest struct {
	Limit int
}

func (s Latest) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("id DESC").Limit(s.Limit)
}

// Chronological orders rows by write order.
type Chronological struct{}

func (s Chronological) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
