package importlog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is the persisted summary of one completed import run. Entries
// are written once, after the run finishes, and never mutated.
type Entry struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	entityType   string
	fileName     string
	totalRows    int
	successCount int
	errorCount   int
	// errorList is the serialized per-row error list; empty when the
	// run had no failures (stored as NULL).
	errorList string
	createdAt time.Time
}

func New(
	tenantID uuid.UUID,
	entityType string,
	fileName string,
	totalRows int,
	successCount int,
	errorCount int,
	errorList string,
) Entry {
	return Entry{
		tenantID:     tenantID,
		entityType:   strings.TrimSpace(entityType),
		fileName:     strings.TrimSpace(fileName),
		totalRows:    totalRows,
		successCount: successCount,
		errorCount:   errorCount,
		errorList:    errorList,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	entityType string,
	fileName string,
	totalRows int,
	successCount int,
	errorCount int,
	errorList string,
	createdAt time.Time,
) Entry {
	return Entry{
		id:           id,
		tenantID:     tenantID,
		entityType:   entityType,
		fileName:     fileName,
		totalRows:    totalRows,
		successCount: successCount,
		errorCount:   errorCount,
		errorList:    errorList,
		createdAt:    createdAt,
	}
}

func (e Entry) ID() uuid.UUID        { return e.id }
func (e Entry) TenantID() uuid.UUID  { return e.tenantID }
func (e Entry) EntityType() string   { return e.entityType }
func (e Entry) FileName() string     { return e.fileName }
func (e Entry) TotalRows() int       { return e.totalRows }
func (e Entry) SuccessCount() int    { return e.successCount }
func (e Entry) ErrorCount() int      { return e.errorCount }
func (e Entry) ErrorList() string    { return e.errorList }
func (e Entry) CreatedAt() time.Time { return e.createdAt }
