package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormStaffRepository implements the StaffRepository interface
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GORM staff repository
func NewGormStaffRepository(db *gorm.DB) repository.StaffRepository {
	return &GormStaffRepository{
		db: db,
	}
}

// StaffUsers GORM model for database mapping
type StaffUsers struct {
	ID           uint           `gorm:"primaryKey"`
	Email        string         `gorm:"column:email;uniqueIndex;not null"`
	Name         string         `gorm:"column:name"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Active       bool           `gorm:"column:active;default:true"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (StaffUsers) TableName() string {
	return "staff_users"
}

// AutoMigrateStaff creates or updates the staff_users table
func AutoMigrateStaff(db *gorm.DB) error {
	return db.AutoMigrate(&StaffUsers{})
}

// GetByEmail finds an active or inactive staff account by email
func (r *GormStaffRepository) GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error) {
	var staff StaffUsers
	result := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&staff)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", email, repository.ErrStaffNotFound)
		}
		return nil, result.Error
	}

	return toStaffEntity(staff), nil
}

// Create stores a new staff account and fills in its generated ID
func (r *GormStaffRepository) Create(ctx context.Context, user *entity.StaffUser) error {
	staff := StaffUsers{
		Email:        normalizeEmail(user.Email),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Active:       user.Active,
	}

	// Active carries a column default, so an explicit false must be written separately
	if err := r.db.WithContext(ctx).Create(&staff).Error; err != nil {
		return fmt.Errorf("failed to create staff user %s: %w", user.Email, err)
	}
	if !user.Active {
		if err := r.db.WithContext(ctx).Model(&staff).Update("active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate staff user %s: %w", user.Email, err)
		}
		staff.Active = false
	}

	*user = *toStaffEntity(staff)
	return nil
}

func toStaffEntity(staff StaffUsers) *entity.StaffUser {
	return &entity.StaffUser{
		ID:           staff.ID,
		Email:        staff.Email,
		Name:         staff.Name,
		PasswordHash: staff.PasswordHash,
		Active:       staff.Active,
		CreatedAt:    staff.CreatedAt,
		UpdatedAt:    staff.UpdatedAt,
		DeletedAt:    staff.DeletedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
