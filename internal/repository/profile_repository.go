package repository

import (
	"context"

	"legaldesk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var profileColumns = []string{"id", "email", "password_hash", "full_name", "role", "created_at", "updated_at"}

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	query := squirrel.Insert("profiles").
		Columns(profileColumns...).
		Values(p.ID, p.Email, p.PasswordHash, p.FullName, p.Role, p.CreatedAt, p.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *ProfileRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Profile, error) {
	query := squirrel.Select(profileColumns...).
		From("profiles").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Profile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &p, nil
}
