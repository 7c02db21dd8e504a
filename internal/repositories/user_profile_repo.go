package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
)

// UserProfileRepository reads identities synced from the external identity
// provider. Profiles are consumed, never created, by this application.
type UserProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.UserProfile, error)
}

type userProfileRepo struct {
	db Querier
}

func NewUserProfileRepo(db Querier) UserProfileRepository {
	return &userProfileRepo{db: db}
}

func (r *userProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	query := `SELECT id, full_name, role, created_at FROM user_profiles WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&profile.ID, &profile.FullName, &profile.Role, &profile.CreatedAt)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *userProfileRepo) ListByRole(ctx context.Context, role models.Role) ([]*models.UserProfile, error) {
	query := `SELECT id, full_name, role, created_at FROM user_profiles WHERE role = $1 ORDER BY full_name`
	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		profile := &models.UserProfile{}
		if err := rows.Scan(&profile.ID, &profile.FullName, &profile.Role, &profile.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
