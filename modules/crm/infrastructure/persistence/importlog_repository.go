package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldline/fieldline/modules/crm/domain/entities/importlog"
)

const (
	importLogInsertQuery = `
		INSERT INTO import_logs (tenant_id, entity_type, file_name, total_rows, success_count, error_count, error_list)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	importLogListQuery = `
		SELECT id, tenant_id, entity_type, file_name, total_rows, success_count, error_count, error_list, created_at
		FROM import_logs
		WHERE tenant_id = $1
		ORDER BY created_at DESC`
)

type ImportLogRepository struct{}

func NewImportLogRepository() importlog.Repository {
	return &ImportLogRepository{}
}

func (r *ImportLogRepository) Record(ctx context.Context, e importlog.Entry) (uuid.UUID, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	// The error list is NULL when the run had no failures.
	var errorList *string
	if e.ErrorList() != "" {
		list := e.ErrorList()
		errorList = &list
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, importLogInsertQuery,
		tenantID,
		e.EntityType(),
		e.FileName(),
		e.TotalRows(),
		e.SuccessCount(),
		e.ErrorCount(),
		errorList,
	).Scan(&id); err != nil {
		return uuid.Nil, gerrors.Wrap(err, "failed to record import log entry")
	}
	return id, nil
}

func (r *ImportLogRepository) List(ctx context.Context, limit int) ([]importlog.Entry, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, err
	}

	query := importLogListQuery
	args := []any{tenantID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list import log entries")
	}
	defer rows.Close()

	var out []importlog.Entry
	for rows.Next() {
		entry, err := scanImportLogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanImportLogEntry(row pgx.Row) (importlog.Entry, error) {
	var (
		id, tenantID                        uuid.UUID
		entityType, fileName                string
		totalRows, successCount, errorCount int
		errorList                           *string
		createdAt                           time.Time
	)
	if err := row.Scan(&id, &tenantID, &entityType, &fileName, &totalRows, &successCount, &errorCount, &errorList, &createdAt); err != nil {
		return importlog.Entry{}, err
	}
	list := ""
	if errorList != nil {
		list = *errorList
	}
	return importlog.Hydrate(id, tenantID, entityType, fileName, totalRows, successCount, errorCount, list, createdAt), nil
}
