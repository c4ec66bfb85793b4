package repository

import (
	"context"
	"errors"

	"relatosapi/internal/model"
)

var (
	// ErrInvalidReport is returned when the store rejects report fields (missing or malformed values).
	ErrInvalidReport = errors.New("report rejected by store")
	// ErrReferential is returned when an attachment references a report that does not exist.
	ErrReferential = errors.New("attachment references a missing report")
)

// ReportRepository defines data access for reports and their attachments using SQL queries only.
// No business logic here, only persistence.
type ReportRepository interface {
	// CreateReport inserts a report row and returns the identity assigned by the store.
	CreateReport(ctx context.Context, r *model.Report) (int64, error)

	// CreateAttachment inserts an attachment row linked to reportID.
	CreateAttachment(ctx context.Context, reportID int64, a *model.Attachment) (int64, error)

	// List returns every report without attachments, ordered by id.
	List(ctx context.Context) ([]model.Report, error)

	// ListNewest returns up to limit reports, newest first, with attachments loaded in the same query.
	ListNewest(ctx context.Context, limit int) ([]model.Report, error)

	// FindByID returns a single report. Attachments are loaded only when withAttachments is set.
	// Returns sql.ErrNoRows when the report does not exist.
	FindByID(ctx context.Context, id int64, withAttachments bool) (*model.Report, error)

	// FindAttachment returns one attachment of a report, payload included.
	// Returns sql.ErrNoRows when no such attachment belongs to the report.
	FindAttachment(ctx context.Context, reportID, attachmentID int64) (*model.Attachment, error)

	// InTx runs fn inside a single transaction. The repository passed to fn is bound to it.
	// The transaction commits only if fn returns nil; every other exit rolls back.
	InTx(ctx context.Context, fn func(ReportRepository) error) error
}
