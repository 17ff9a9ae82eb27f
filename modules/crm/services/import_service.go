package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/fieldline/fieldline/modules/crm/domain/entities/importlog"
	"github.com/fieldline/fieldline/modules/crm/importing"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
	"github.com/fieldline/fieldline/pkg/tabular"
)

// ImportRequest is everything one import run needs. Mapping may be
// nil, in which case the run starts from the automatic header mapping.
type ImportRequest struct {
	EntityType importing.EntityType
	FileName   string
	Payload    []byte
	Mapping    importing.FieldMapping
	Overrides  importing.Overrides
}

// ImportCompletedEvent is published after a run finishes and its log
// entry is recorded, whether or not any rows failed.
type ImportCompletedEvent struct {
	EntityType importing.EntityType
	FileName   string
	Result     importing.Result
}

type ImportService struct {
	executor  *importing.Executor
	logs      importlog.Repository
	publisher eventbus.EventBus
}

func NewImportService(executor *importing.Executor, logs importlog.Repository, publisher eventbus.EventBus) *ImportService {
	return &ImportService{executor: executor, logs: logs, publisher: publisher}
}

// Preview parses the uploaded file and returns its headers together
// with the automatic mapping, without creating anything.
func (s *ImportService) Preview(req ImportRequest) (tabular.Table, importing.FieldMapping, error) {
	table, err := tabular.Parse(req.FileName, req.Payload)
	if err != nil {
		return tabular.Table{}, nil, err
	}
	return table, importing.AutoMap(table.Headers, importing.TargetFields(req.EntityType)), nil
}

// Import runs one complete import: parse, map, execute, record. A
// structurally broken file (unreadable, empty, bad headers) fails
// before any row is processed; once row processing starts, every
// failure is a row outcome inside the returned result.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (importing.Result, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return importing.Result{}, err
	}

	table, err := tabular.Parse(req.FileName, req.Payload)
	if err != nil {
		return importing.Result{}, err
	}
	if len(table.Errors) > 0 {
		return importing.Result{}, fmt.Errorf("file rejected: %s", strings.Join(table.Errors, "; "))
	}

	mapping := req.Mapping
	if mapping == nil {
		mapping = importing.AutoMap(table.Headers, importing.TargetFields(req.EntityType))
	}

	result, err := s.executor.Run(ctx, req.EntityType, table.Rows, mapping, req.Overrides)
	if err != nil {
		return importing.Result{}, err
	}

	errorList := ""
	if len(result.Errors) > 0 {
		raw, err := json.Marshal(result.Errors)
		if err != nil {
			return importing.Result{}, errors.Wrap(err, "failed to serialize import errors")
		}
		errorList = string(raw)
	}

	entry := importlog.New(
		tenantID,
		string(req.EntityType),
		req.FileName,
		result.TotalRows(),
		result.SuccessCount,
		result.ErrorCount(),
		errorList,
	)
	if _, err := s.logs.Record(ctx, entry); err != nil {
		return importing.Result{}, errors.Wrap(err, "failed to record import log")
	}

	s.publisher.Publish(ImportCompletedEvent{
		EntityType: req.EntityType,
		FileName:   req.FileName,
		Result:     result,
	})
	return result, nil
}

// History returns the tenant's most recent import log entries.
func (s *ImportService) History(ctx context.Context, limit int) ([]importlog.Entry, error) {
	return s.logs.List(ctx, limit)
}
