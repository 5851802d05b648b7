package repository

import (
	"context"

	"legaldesk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var requestColumns = []string{
	"id", "client_id", "attorney_id", "case_type", "status",
	"full_name", "phone", "email", "description", "created_at", "updated_at",
}

type RequestRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRequestRepository(db *pgxpool.Pool, logger *zap.Logger) *RequestRepository {
	return &RequestRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *models.LegalRequest) error {
	query := squirrel.Insert("legal_requests").
		Columns(requestColumns...).
		Values(req.ID, req.ClientID, req.AttorneyID, req.CaseType, req.Status,
			req.FullName, req.Phone, req.Email, req.Description, req.CreatedAt, req.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err)
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LegalRequest, error) {
	query := squirrel.Select(requestColumns...).
		From("legal_requests").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var req models.LegalRequest
	if err := scanRequest(r.db.QueryRow(ctx, sql, args...), &req); err != nil {
		return nil, translateError(err)
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, filter RequestFilter) ([]*models.LegalRequest, error) {
	sql, args, err := listRequestsQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var requests []*models.LegalRequest
	for rows.Next() {
		var req models.LegalRequest
		if err := scanRequest(rows, &req); err != nil {
			return nil, err
		}
		requests = append(requests, &req)
	}

	return requests, rows.Err()
}

// CompareAndSwap moves the request from expected to next in one conditional
// UPDATE. It reports false when the row is missing or no longer in the
// expected state; the predicate and write run as a single statement, so two
// racing swaps from the same expected state cannot both succeed.
func (r *RequestRepository) CompareAndSwap(ctx context.Context, id uuid.UUID, expected, next RequestState) (bool, error) {
	sql, args, err := compareAndSwapQuery(id, expected, next).ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, translateError(err)
	}

	swapped := tag.RowsAffected() == 1
	r.logger.Debug("Request state swap",
		zap.String("request_id", id.String()),
		zap.String("from", string(expected.Status)),
		zap.String("to", string(next.Status)),
		zap.Bool("swapped", swapped),
	)
	return swapped, nil
}

func listRequestsQuery(filter RequestFilter) squirrel.SelectBuilder {
	query := squirrel.Select(requestColumns...).
		From("legal_requests").
		OrderBy("created_at DESC", "id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ClientID != nil {
		query = query.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.AttorneyID != nil {
		query = query.Where(squirrel.Eq{"attorney_id": *filter.AttorneyID})
	}
	if filter.Unassigned {
		query = query.Where(squirrel.Eq{"attorney_id": nil})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where(squirrel.Eq{"status": statuses})
	}
	return query
}

func compareAndSwapQuery(id uuid.UUID, expected, next RequestState) squirrel.UpdateBuilder {
	return squirrel.Update("legal_requests").
		Set("status", string(next.Status)).
		Set("attorney_id", attorneyArg(next.AttorneyID)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"status":      string(expected.Status),
			"attorney_id": attorneyArg(expected.AttorneyID),
		}).
		PlaceholderFormat(squirrel.Dollar)
}

// attorneyArg unwraps the pointer so squirrel renders IS NULL for nil and
// never calls Value on a nil *uuid.UUID.
func attorneyArg(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner, req *models.LegalRequest) error {
	return row.Scan(
		&req.ID, &req.ClientID, &req.AttorneyID, &req.CaseType, &req.Status,
		&req.FullName, &req.Phone, &req.Email, &req.Description, &req.CreatedAt, &req.UpdatedAt,
	)
}
