package repository

import (
	"context"
	"errors"

	"qtholidays-service/internal/domain/entity"
)

// ErrStaffNotFound is returned when no account matches the email
var ErrStaffNotFound = errors.New("staff user not found")

// StaffRepository defines the interface for staff account lookups
type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error)
	Create(ctx context.Context, user *entity.StaffUser) error
}
