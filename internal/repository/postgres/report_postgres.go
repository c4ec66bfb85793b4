package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"relatosapi/internal/model"
	"relatosapi/internal/repository"
)

// SQLSTATE codes mapped to repository errors.
const (
	codeForeignKeyViolation   = "23503"
	codeNotNullViolation      = "23502"
	codeCheckViolation        = "23514"
	codeInvalidDatetimeFormat = "22007"
	codeDatetimeOverflow      = "22008"
	codeInvalidTextRep        = "22P02"
)

// querier is the subset of *sql.DB and *sql.Tx used by the repository.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ReportPostgres struct {
	db *sql.DB
	q  querier
	tx bool
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: db, q: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

const reportColumns = `r.id, r.nome, r.contato, r.instituicao, r.data_ocorrido, r.relato_texto`

// CreateReport inserts a new report row and returns its id.
func (r *ReportPostgres) CreateReport(ctx context.Context, rep *model.Report) (int64, error) {
	const q = `
		INSERT INTO relatos (nome, contato, instituicao, data_ocorrido, relato_texto)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.q.QueryRowContext(ctx, q,
		rep.Nome,
		rep.Contato,
		rep.Instituicao,
		rep.DataOcorrido.Time,
		rep.RelatoTexto,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// CreateAttachment inserts an attachment row referencing reportID.
func (r *ReportPostgres) CreateAttachment(ctx context.Context, reportID int64, a *model.Attachment) (int64, error) {
	const q = `
		INSERT INTO anexos (filename, mimetype, dados, storage_key, relato_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.q.QueryRowContext(ctx, q,
		a.Filename,
		a.MimeType,
		payloadArg(a),
		nullString(a.StorageKey),
		reportID,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// List returns report metadata ordered by id.
func (r *ReportPostgres) List(ctx context.Context) ([]model.Report, error) {
	const q = `SELECT ` + reportColumns + ` FROM relatos r ORDER BY r.id ASC`
	rows, err := r.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Report, 0)
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(
			&rep.ID,
			&rep.Nome,
			&rep.Contato,
			&rep.Instituicao,
			&rep.DataOcorrido.Time,
			&rep.RelatoTexto,
		); err != nil {
			return nil, err
		}
		items = append(items, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListNewest returns the newest reports with their attachments in a single round trip.
func (r *ReportPostgres) ListNewest(ctx context.Context, limit int) ([]model.Report, error) {
	const q = `
		SELECT ` + reportColumns + `, a.id, a.filename, a.mimetype, a.dados, a.storage_key
		FROM (
			SELECT id, nome, contato, instituicao, data_ocorrido, relato_texto
			FROM relatos
			ORDER BY id DESC
			LIMIT $1
		) r
		LEFT JOIN anexos a ON a.relato_id = r.id
		ORDER BY r.id DESC, a.id ASC
	`
	rows, err := r.q.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReportsWithAttachments(rows)
}

// FindByID fetches a single report, optionally with its attachments.
func (r *ReportPostgres) FindByID(ctx context.Context, id int64, withAttachments bool) (*model.Report, error) {
	if !withAttachments {
		const q = `SELECT ` + reportColumns + ` FROM relatos r WHERE r.id = $1`
		var rep model.Report
		if err := r.q.QueryRowContext(ctx, q, id).Scan(
			&rep.ID,
			&rep.Nome,
			&rep.Contato,
			&rep.Instituicao,
			&rep.DataOcorrido.Time,
			&rep.RelatoTexto,
		); err != nil {
			return nil, err
		}
		return &rep, nil
	}

	const q = `
		SELECT ` + reportColumns + `, a.id, a.filename, a.mimetype, a.dados, a.storage_key
		FROM relatos r
		LEFT JOIN anexos a ON a.relato_id = r.id
		WHERE r.id = $1
		ORDER BY a.id ASC
	`
	rows, err := r.q.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanReportsWithAttachments(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return &items[0], nil
}

// FindAttachment fetches one attachment, scoped to its report.
func (r *ReportPostgres) FindAttachment(ctx context.Context, reportID, attachmentID int64) (*model.Attachment, error) {
	const q = `
		SELECT id, relato_id, filename, mimetype, dados, storage_key
		FROM anexos
		WHERE id = $1 AND relato_id = $2
	`
	var (
		a   model.Attachment
		key sql.NullString
	)
	if err := r.q.QueryRowContext(ctx, q, attachmentID, reportID).Scan(
		&a.ID,
		&a.ReportID,
		&a.Filename,
		&a.MimeType,
		&a.Data,
		&key,
	); err != nil {
		return nil, err
	}
	a.StorageKey = key.String
	return &a, nil
}

// InTx runs fn in a transaction. A repository already bound to a transaction reuses it.
func (r *ReportPostgres) InTx(ctx context.Context, fn func(repository.ReportRepository) error) (err error) {
	if r.tx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && err != nil {
			err = fmt.Errorf("%w; rollback failed: %v", err, rbErr)
		}
	}()

	if err = fn(&ReportPostgres{db: r.db, q: tx, tx: true}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

// scanReportsWithAttachments folds joined rows into reports, preserving row order.
func scanReportsWithAttachments(rows *sql.Rows) ([]model.Report, error) {
	items := make([]model.Report, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			rep      model.Report
			anexoID  sql.NullInt64
			filename sql.NullString
			mimetype sql.NullString
			dados    []byte
			key      sql.NullString
		)
		if err := rows.Scan(
			&rep.ID,
			&rep.Nome,
			&rep.Contato,
			&rep.Instituicao,
			&rep.DataOcorrido.Time,
			&rep.RelatoTexto,
			&anexoID,
			&filename,
			&mimetype,
			&dados,
			&key,
		); err != nil {
			return nil, err
		}

		i, seen := index[rep.ID]
		if !seen {
			rep.Anexos = make([]model.Attachment, 0)
			items = append(items, rep)
			i = len(items) - 1
			index[rep.ID] = i
		}
		if anexoID.Valid {
			items[i].Anexos = append(items[i].Anexos, model.Attachment{
				ID:         anexoID.Int64,
				ReportID:   rep.ID,
				Filename:   filename.String,
				MimeType:   mimetype.String,
				Data:       dados,
				StorageKey: key.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// payloadArg stores an empty payload as an empty BYTEA, and nothing when the payload lives elsewhere.
func payloadArg(a *model.Attachment) any {
	if a.StorageKey != "" {
		return nil
	}
	if a.Data == nil {
		return []byte{}
	}
	return a.Data
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// translate maps driver errors onto repository sentinels, keeping the cause wrapped.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrReferential, pgErr.Message)
	case codeNotNullViolation, codeCheckViolation, codeInvalidDatetimeFormat, codeDatetimeOverflow, codeInvalidTextRep:
		return fmt.Errorf("%w: %s", repository.ErrInvalidReport, pgErr.Message)
	default:
		return err
	}
}
