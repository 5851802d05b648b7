package repository

import (
	"context"

	"legaldesk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var documentColumns = []string{
	"id", "legal_request_id", "uploaded_by", "path", "name", "mime_type", "size", "created_at",
}

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.RequestDocument) error {
	query := squirrel.Insert("legal_request_documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.LegalRequestID, doc.UploadedBy, doc.Path, doc.Name, doc.MimeType, doc.Size, doc.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RequestDocument, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *DocumentRepository) GetByPath(ctx context.Context, path string) (*models.RequestDocument, error) {
	return r.getOne(ctx, squirrel.Eq{"path": path})
}

func (r *DocumentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.RequestDocument, error) {
	query := squirrel.Select(documentColumns...).
		From("legal_request_documents").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var doc models.RequestDocument
	if err := scanDocument(r.db.QueryRow(ctx, sql, args...), &doc); err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}

// ListByRequestID returns the request's documents in upload order.
func (r *DocumentRepository) ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]*models.RequestDocument, error) {
	query := squirrel.Select(documentColumns...).
		From("legal_request_documents").
		Where(squirrel.Eq{"legal_request_id": requestID}).
		OrderBy("created_at ASC", "path ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var documents []*models.RequestDocument
	for rows.Next() {
		var doc models.RequestDocument
		if err := scanDocument(rows, &doc); err != nil {
			return nil, err
		}
		documents = append(documents, &doc)
	}

	return documents, rows.Err()
}

// PathsWithPrefix returns every recorded path starting with prefix.
func (r *DocumentRepository) PathsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	query := squirrel.Select("path").
		From("legal_request_documents").
		Where(squirrel.Expr("starts_with(path, ?)", prefix)).
		OrderBy("path").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("legal_request_documents").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocument(row rowScanner, doc *models.RequestDocument) error {
	return row.Scan(
		&doc.ID, &doc.LegalRequestID, &doc.UploadedBy, &doc.Path, &doc.Name, &doc.MimeType, &doc.Size, &doc.CreatedAt,
	)
}
