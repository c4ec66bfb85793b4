package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"relatosapi/internal/codec"
	"relatosapi/internal/model"
	"relatosapi/internal/repository"
	"relatosapi/internal/storage"
	"relatosapi/internal/validation"
)

var (
	ErrNotFound           = errors.New("report not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrBlobStoreMissing   = errors.New("attachment payload is in object storage but no object storage is configured")
)

const (
	// DefaultNewestLimit is how many reports ListNewest returns when not configured.
	DefaultNewestLimit  = 5
	defaultQueryTimeout = 5 * time.Second
	presignExpiry       = 15 * time.Minute
	blobPrefix          = "anexos"
)

// Options tune the service. Zero values fall back to defaults.
type Options struct {
	NewestLimit  int
	QueryTimeout time.Duration
}

// AttachmentContent is a downloadable attachment. Exactly one of Data or RedirectURL is meaningful:
// RedirectURL is set when the payload lives in object storage.
type AttachmentContent struct {
	Filename    string
	MimeType    string
	Data        []byte
	RedirectURL string
}

// ReportService defines the use cases for citizen reports.
type ReportService interface {
	// Create validates the input, decodes its attachments and persists the report together with
	// every attachment as one unit. Nothing is persisted when any step fails.
	Create(ctx context.Context, in model.NewReport) (*model.Report, error)

	// ListAll returns every report's metadata, without attachments.
	ListAll(ctx context.Context) ([]model.Report, error)

	// ListNewest returns the most recent reports, newest first, with attachments.
	ListNewest(ctx context.Context) ([]model.Report, error)

	// Get returns a single report with attachments.
	Get(ctx context.Context, id int64) (*model.Report, error)

	// GetAttachment returns one attachment's payload for download.
	GetAttachment(ctx context.Context, reportID, attachmentID int64) (*AttachmentContent, error)
}

// reportService is a concrete implementation of ReportService.
// store is nil when attachment payloads are kept in the database.
type reportService struct {
	repo   repository.ReportRepository
	store  storage.Storage
	opts   Options
	tracer trace.Tracer
}

// NewReportService constructs a new ReportService.
func NewReportService(repo repository.ReportRepository, store storage.Storage, opts Options) ReportService {
	if opts.NewestLimit <= 0 {
		opts.NewestLimit = DefaultNewestLimit
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = defaultQueryTimeout
	}
	return &reportService{
		repo:   repo,
		store:  store,
		opts:   opts,
		tracer: otel.Tracer("relatosapi/internal/service"),
	}
}

func (s *reportService) Create(ctx context.Context, in model.NewReport) (_ *model.Report, err error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.Create",
		trace.WithAttributes(attribute.Int("relatos.anexos", len(in.Anexos))))
	defer func() { endSpan(span, err) }()

	report, anexos, err := buildReport(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	uploaded, err := s.putBlobs(ctx, anexos)
	if err != nil {
		return nil, err
	}

	err = s.repo.InTx(ctx, func(tx repository.ReportRepository) error {
		id, err := tx.CreateReport(ctx, report)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		for i := range anexos {
			aid, err := tx.CreateAttachment(ctx, id, &anexos[i])
			if err != nil {
				return fmt.Errorf("create attachment %d: %w", i, err)
			}
			anexos[i].ID = aid
			anexos[i].ReportID = id
		}
		report.ID = id
		return nil
	})
	if err != nil {
		// The transaction is gone; compensate uploads even if ctx already expired.
		if delErr := s.deleteBlobs(context.WithoutCancel(ctx), uploaded); delErr != nil {
			return nil, fmt.Errorf("%w; rollback delete failed: %v", err, delErr)
		}
		return nil, err
	}

	report.Anexos = anexos
	span.SetAttributes(attribute.Int64("relatos.id", report.ID))
	return report, nil
}

// buildReport validates in and converts it to domain values. No I/O happens here, so a bad
// attachment is rejected before anything is written.
func buildReport(in model.NewReport) (*model.Report, []model.Attachment, error) {
	// Blank text counts as missing for the required fields.
	in.Nome = strings.TrimSpace(in.Nome)
	in.Instituicao = strings.TrimSpace(in.Instituicao)
	if strings.TrimSpace(in.RelatoTexto) == "" {
		in.RelatoTexto = ""
	}
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, nil, err
	}

	date, err := model.ParseDate(in.DataOcorrido)
	if err != nil {
		return nil, nil, validation.NewFieldError("data_ocorrido", "datetime", "data_ocorrido must be a date in 2006-01-02 format")
	}

	var contato *string
	if in.Contato != nil && strings.TrimSpace(*in.Contato) != "" {
		c := strings.TrimSpace(*in.Contato)
		contato = &c
	}

	report := &model.Report{
		Nome:         in.Nome,
		Contato:      contato,
		Instituicao:  in.Instituicao,
		DataOcorrido: date,
		RelatoTexto:  in.RelatoTexto,
	}

	anexos := make([]model.Attachment, 0, len(in.Anexos))
	for i, a := range in.Anexos {
		data, err := codec.Decode(a.DadosBase64)
		if err != nil {
			field := fmt.Sprintf("anexos[%d].dados_base64", i)
			return nil, nil, validation.NewFieldError(field, "base64", field+" must be valid base64")
		}
		anexos = append(anexos, model.Attachment{
			Filename: a.Filename,
			MimeType: a.MimeType,
			Data:     data,
		})
	}
	return report, anexos, nil
}

// ListAll returns report metadata.
func (s *reportService) ListAll(ctx context.Context) ([]model.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	return s.repo.List(ctx)
}

// ListNewest returns the newest reports with their attachment payloads.
func (s *reportService) ListNewest(ctx context.Context) (_ []model.Report, err error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.ListNewest")
	defer func() { endSpan(span, err) }()

	ctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	items, err := s.repo.ListNewest(ctx, s.opts.NewestLimit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if err := s.hydrate(ctx, items[i].Anexos); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Get returns a report by ID.
func (s *reportService) Get(ctx context.Context, id int64) (*model.Report, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	rep, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.hydrate(ctx, rep.Anexos); err != nil {
		return nil, err
	}
	return rep, nil
}

// GetAttachment returns an attachment's payload, or a presigned URL when it lives in object storage.
func (s *reportService) GetAttachment(ctx context.Context, reportID, attachmentID int64) (*AttachmentContent, error) {
	if reportID <= 0 || attachmentID <= 0 {
		return nil, ErrAttachmentNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	a, err := s.repo.FindAttachment(ctx, reportID, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}

	out := &AttachmentContent{Filename: a.Filename, MimeType: a.MimeType, Data: a.Data}
	if a.StorageKey == "" {
		return out, nil
	}
	if s.store == nil {
		return nil, ErrBlobStoreMissing
	}
	u, err := s.store.PresignGet(ctx, a.StorageKey, a.Filename, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign attachment: %w", err)
	}
	out.Data = nil
	out.RedirectURL = u
	return out, nil
}

// putBlobs uploads payloads when object storage is configured and records their keys.
// On failure, objects uploaded so far are removed.
func (s *reportService) putBlobs(ctx context.Context, anexos []model.Attachment) ([]string, error) {
	if s.store == nil || len(anexos) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(anexos))
	for i := range anexos {
		a := &anexos[i]
		key := path.Join(blobPrefix, uuid.NewString()+strings.ToLower(path.Ext(a.Filename)))

		obj := storage.Object{
			Key:         key,
			Size:        int64(len(a.Data)),
			ContentType: a.MimeType,
			Filename:    a.Filename,
		}
		if err := s.store.Put(ctx, obj, bytes.NewReader(a.Data)); err != nil {
			if delErr := s.deleteBlobs(context.WithoutCancel(ctx), keys); delErr != nil {
				return nil, fmt.Errorf("upload to storage: %v; rollback delete failed: %v", err, delErr)
			}
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		a.StorageKey = key
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *reportService) deleteBlobs(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// hydrate loads payloads kept in object storage into the attachments.
func (s *reportService) hydrate(ctx context.Context, anexos []model.Attachment) error {
	for i := range anexos {
		a := &anexos[i]
		if a.StorageKey == "" {
			continue
		}
		if s.store == nil {
			return ErrBlobStoreMissing
		}
		rc, _, err := s.store.Get(ctx, a.StorageKey)
		if err != nil {
			return fmt.Errorf("fetch attachment %d: %w", a.ID, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("read attachment %d: %w", a.ID, err)
		}
		a.Data = data
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
