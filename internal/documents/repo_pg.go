package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, title, file_path, status, size_bytes, page_count, error_message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var pageCount sql.NullInt64
	if doc.PageCount != nil {
		pageCount = sql.NullInt64{Int64: int64(*doc.PageCount), Valid: true}
	}
	var errorMessage sql.NullString
	if doc.ErrorMessage != nil {
		errorMessage = sql.NullString{String: *doc.ErrorMessage, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.FilePath,
		string(doc.Status),
		doc.SizeBytes,
		pageCount,
		errorMessage,
		doc.CreatedAt,
	)
	return err
}

// GetByID returns a document owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, title, file_path, status, size_bytes, page_count, error_message, created_at
FROM documents
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, documentID, userID)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser returns the user's documents newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	const query = `
SELECT id, user_id, title, file_path, status, size_bytes, page_count, error_message, created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateStatusIf performs a conditional status transition so concurrent
// regeneration attempts cannot race: the update only lands when the current
// status is one of the expected source states.
func (r *PGRepo) UpdateStatusIf(ctx context.Context, userID, documentID string, from []Status, to Status, errorMessage *string) error {
	if len(from) == 0 {
		return fmt.Errorf("at least one source status is required")
	}

	placeholders := make([]string, 0, len(from))
	args := []any{string(to), nullableMessage(errorMessage), documentID, userID}
	for i, s := range from {
		placeholders = append(placeholders, fmt.Sprintf("$%d", 5+i))
		args = append(args, string(s))
	}

	query := fmt.Sprintf(`
UPDATE documents
SET status = $1, error_message = $2
WHERE id = $3 AND user_id = $4 AND status IN (%s)`, strings.Join(placeholders, ", "))

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Distinguish a missing document from a status conflict.
	if _, err := r.GetByID(ctx, userID, documentID); err != nil {
		return err
	}
	return ErrStatusConflict
}

// Delete removes the document row; quizzes and attempts cascade via FK.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	const query = `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, documentID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument maps a documents row to the domain type with explicit,
// typed handling of nullable columns.
func scanDocument(row rowScanner) (Document, error) {
	var (
		doc          Document
		status       string
		pageCount    sql.NullInt64
		errorMessage sql.NullString
	)
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.FilePath,
		&status,
		&doc.SizeBytes,
		&pageCount,
		&errorMessage,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	doc.Status = Status(status)
	if pageCount.Valid {
		pages := int(pageCount.Int64)
		doc.PageCount = &pages
	}
	if errorMessage.Valid {
		msg := errorMessage.String
		doc.ErrorMessage = &msg
	}
	return doc, nil
}

func nullableMessage(msg *string) sql.NullString {
	if msg == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *msg, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
