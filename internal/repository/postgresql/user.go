package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
	"github.com/hadirclass/hadir-backend-go/internal/domain/user"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, email, password_hash, display_name, role, oauth_provider, oauth_provider_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.DisplayName,
		u.Role,
		u.OAuthProvider,
		u.OAuthProviderID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

// GetByOAuth implements user.UserRepository.
func (r *userRepositoryImpl) GetByOAuth(ctx context.Context, provider, providerID string) (user.User, error) {
	return r.getOne(ctx, "oauth_provider = $1 AND oauth_provider_id = $2", provider, providerID)
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, args ...interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, display_name, role, oauth_provider, oauth_provider_id,
			   face_descriptor, created_at, updated_at
		FROM users
		WHERE ` + where + `
		LIMIT 1
	`

	var u user.User
	var descriptorJSON []byte
	err := q.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.DisplayName,
		&u.Role,
		&u.OAuthProvider,
		&u.OAuthProviderID,
		&descriptorJSON,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if len(descriptorJSON) > 0 {
		var descriptor face.Descriptor
		if err := json.Unmarshal(descriptorJSON, &descriptor); err != nil {
			return user.User{}, fmt.Errorf("failed to decode face descriptor: %w", err)
		}
		u.FaceDescriptor = descriptor
	}

	return u, nil
}

// UpdateProfile implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET display_name = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, u.DisplayName, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetFaceDescriptor implements user.UserRepository.
func (r *userRepositoryImpl) SetFaceDescriptor(ctx context.Context, userID string, descriptor []float32) error {
	q := GetQuerier(ctx, r.db)

	descriptorJSON, err := json.Marshal(descriptor)
	if err != nil {
		return fmt.Errorf("failed to encode face descriptor: %w", err)
	}

	query := `
		UPDATE users
		SET face_descriptor = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, descriptorJSON, userID)
	if err != nil {
		return fmt.Errorf("failed to set face descriptor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
