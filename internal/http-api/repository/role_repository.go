package repository

import (
	"tourhub/internal/http-api/models"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(role *models.Role) error
	FindByName(name string) (*models.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

func (r *roleRepository) FindByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("role_name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
