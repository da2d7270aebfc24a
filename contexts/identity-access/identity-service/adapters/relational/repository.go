package relational

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"scribe/contexts/identity-access/identity-service/domain/entities"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	"scribe/internal/platform/db"
)

// Repository persists users through gorm on postgres or sqlite.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{})
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (entities.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *Repository) first(ctx context.Context, query string, arg string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if message, ok := db.ConstraintViolation(err); ok {
			r.logger.Warn("user insert violated constraint",
				"event", "identity_user_insert_conflict",
				"module", "identity-access/identity-service",
				"layer", "adapter",
				"user_id", user.UserID,
			)
			return fmt.Errorf("%w: %s", domainerrors.ErrConflict, message)
		}
		return err
	}
	return nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("user_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// DeleteUser removes the account. Posts authored by it are removed by the
// posts.author_id cascade.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

type userModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey;size:64"`
	Username     string    `gorm:"column:username;size:64;not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	return userModel{
		UserID:       user.UserID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}
