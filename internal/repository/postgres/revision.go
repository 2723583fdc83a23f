package postgres

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/postgres"
)

type revisionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRevisionRepository(db *postgres.DB, logger *logger.Logger) revision.Repository {
	return &revisionRepository{db: db, logger: logger}
}

// The sequence column is a BIGSERIAL primary key: insert order gives a
// process-wide monotonic counter that never reuses a value, with gaps from
// rolled-back transactions. The table has no UPDATE or DELETE path anywhere in
// this repository.
func (r *revisionRepository) Create(ctx context.Context, rev *revision.Revision) error {
	query := `
		INSERT INTO bill_revisions (
			bill_id,
			actor,
			change_kind,
			recorded_at,
			booking_order_number,
			executive_name,
			client_name,
			bill_start_date,
			bill_end_date,
			work_order_number,
			workflow_status,
			activity_status,
			work_order_attachment,
			ro_attachment,
			invoice_attachment,
			e_invoice_attachment,
			remarks,
			bill_created_by,
			bill_created_at,
			bill_updated_at
		) VALUES (
			:bill_id,
			:actor,
			:change_kind,
			:recorded_at,
			:booking_order_number,
			:executive_name,
			:client_name,
			:bill_start_date,
			:bill_end_date,
			:work_order_number,
			:workflow_status,
			:activity_status,
			:work_order_attachment,
			:ro_attachment,
			:invoice_attachment,
			:e_invoice_attachment,
			:remarks,
			:bill_created_by,
			:bill_created_at,
			:bill_updated_at
		) RETURNING sequence
	`

	q := r.db.GetQuerier(ctx)
	rows, err := q.NamedQuery(query, rev)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to record revision").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&rev.Sequence); err != nil {
			return ierr.WithError(err).
				WithMessage("failed to read revision sequence").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *revisionRepository) ListByBillID(ctx context.Context, billID string) ([]*revision.Revision, error) {
	// No ORDER BY: the store makes no ordering promise, the history
	// projection sorts.
	query := `SELECT * FROM bill_revisions WHERE bill_id = $1`

	revisions := []*revision.Revision{}
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &revisions, query, billID); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list revisions").
			Mark(ierr.ErrDatabase)
	}
	return revisions, nil
}

func (r *revisionRepository) CountByBillID(ctx context.Context, billID string) (int64, error) {
	query := `SELECT COUNT(*) FROM bill_revisions WHERE bill_id = $1`

	var count int64
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, billID); err != nil {
		return 0, ierr.WithError(err).
			WithMessage("failed to count revisions").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
