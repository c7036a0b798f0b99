//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ProfileRepository インターフェース
type ProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *model.Profile) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Profile, error)
	FindByGoogleID(ctx context.Context, db *gorm.DB, googleID string) (*model.Profile, error)
	UpdateRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) error
	LinkGoogleAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, googleID string, profilePicture *string) error
	SetVerified(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

// isUniqueViolation はPostgreSQLの一意制約違反 (SQLSTATE 23505) を判定します。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *gormProfileRepository) Create(ctx context.Context, tx *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(profile)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error creating profile in DB",
			"error", result.Error,
			"user_id", profile.ID.String(),
			"email", profile.Email,
		)
		return fmt.Errorf("gormProfileRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile
	result := db.WithContext(ctx).Where("id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProfileRepository.FindByID: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile
	result := db.WithContext(ctx).Where("email = ?", email).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by email in DB",
			"error", result.Error,
			"email", email,
		)
		return nil, fmt.Errorf("gormProfileRepository.FindByEmail: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) FindByGoogleID(ctx context.Context, db *gorm.DB, googleID string) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile
	result := db.WithContext(ctx).Where("google_id = ?", googleID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by Google ID in DB",
			"error", result.Error,
		)
		return nil, fmt.Errorf("gormProfileRepository.FindByGoogleID: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) UpdateRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		logger.Error("Error updating profile role in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"role", role,
		)
		return fmt.Errorf("gormProfileRepository.UpdateRole: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProfileRepository) LinkGoogleAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, googleID string, profilePicture *string) error {
	logger := middleware.GetLogger(ctx)
	updates := map[string]interface{}{
		"google_id":   googleID,
		"is_verified": true,
	}
	// 既存のプロフィール画像は上書きしない
	if profilePicture != nil {
		updates["profile_picture"] = gorm.Expr("COALESCE(profile_picture, ?)", *profilePicture)
	}
	result := tx.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error linking Google account in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormProfileRepository.LinkGoogleAccount: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProfileRepository) SetVerified(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", userID).Update("is_verified", true)
	if result.Error != nil {
		logger.Error("Error marking profile verified in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormProfileRepository.SetVerified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
