package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/postgres"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

type billRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBillRepository(db *postgres.DB, logger *logger.Logger) bill.Repository {
	return &billRepository{db: db, logger: logger}
}

const billColumns = `
	id,
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
	created_by,
	created_at,
	updated_at
`

func (r *billRepository) Create(ctx context.Context, b *bill.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `) VALUES (
			:id,
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
			:created_by,
			:created_at,
			:updated_at
		)
	`

	q := r.db.GetQuerier(ctx)
	if _, err := q.NamedExec(query, b); err != nil {
		return r.wrapWriteErr(err, "failed to create bill")
	}
	return nil
}

func (r *billRepository) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	return r.getByID(ctx, id, false)
}

func (r *billRepository) GetByIDForUpdate(ctx context.Context, id string) (*bill.Bill, error) {
	return r.getByID(ctx, id, true)
}

func (r *billRepository) getByID(ctx context.Context, id string, forUpdate bool) (*bill.Bill, error) {
	query := `SELECT * FROM bills WHERE id = $1`
	if forUpdate {
		// Row lock serializes concurrent transitions on the same bill for the
		// lifetime of the surrounding transaction.
		query += ` FOR UPDATE`
	}

	var b bill.Bill
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("bill %s not found", id).
				WithHintf("Bill with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to get bill").
			Mark(ierr.ErrDatabase)
	}
	return &b, nil
}

func (r *billRepository) Update(ctx context.Context, b *bill.Bill) error {
	query := `
		UPDATE bills SET
			booking_order_number = :booking_order_number,
			executive_name = :executive_name,
			client_name = :client_name,
			bill_start_date = :bill_start_date,
			bill_end_date = :bill_end_date,
			work_order_number = :work_order_number,
			workflow_status = :workflow_status,
			activity_status = :activity_status,
			work_order_attachment = :work_order_attachment,
			ro_attachment = :ro_attachment,
			invoice_attachment = :invoice_attachment,
			e_invoice_attachment = :e_invoice_attachment,
			remarks = :remarks,
			updated_at = :updated_at
		WHERE id = :id
	`

	q := r.db.GetQuerier(ctx)
	res, err := q.NamedExec(query, b)
	if err != nil {
		return r.wrapWriteErr(err, "failed to update bill")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to update bill").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewErrorf("bill %s not found", b.ID).
			WithHintf("Bill with ID %s was not found", b.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *billRepository) ExistsByBookingOrderNumber(ctx context.Context, bookingOrderNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bills WHERE booking_order_number = $1)`

	var exists bool
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &exists, query, bookingOrderNumber); err != nil {
		return false, ierr.WithError(err).
			WithMessage("failed to check booking order number").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

func (r *billRepository) List(ctx context.Context, filter *types.BillFilter) ([]*bill.Bill, error) {
	query, args := buildBillListQuery(`SELECT * FROM bills`, filter)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, filter.GetLimit(), filter.GetOffset())

	bills := []*bill.Bill{}
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list bills").
			Mark(ierr.ErrDatabase)
	}
	return bills, nil
}

func (r *billRepository) Count(ctx context.Context, filter *types.BillFilter) (int64, error) {
	query, args := buildBillListQuery(`SELECT COUNT(*) FROM bills`, filter)

	var count int64
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithMessage("failed to count bills").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func buildBillListQuery(base string, filter *types.BillFilter) (string, []interface{}) {
	query := base + ` WHERE 1=1`
	args := []interface{}{}

	if filter == nil {
		return query, args
	}
	if filter.WorkflowStatus != nil {
		args = append(args, *filter.WorkflowStatus)
		query += fmt.Sprintf(` AND workflow_status = $%d`, len(args))
	}
	if filter.ActivityStatus != nil {
		args = append(args, *filter.ActivityStatus)
		query += fmt.Sprintf(` AND activity_status = $%d`, len(args))
	}
	if filter.ClientName != nil {
		args = append(args, *filter.ClientName)
		query += fmt.Sprintf(` AND client_name = $%d`, len(args))
	}
	return query, args
}

// wrapWriteErr maps a unique-constraint violation on booking_order_number to
// the duplicate-key error kind; two concurrent raises with the same number
// leave at most one winner and the loser surfaces this.
func (r *billRepository) wrapWriteErr(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ierr.WithError(err).
			WithHint("Booking order number already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithMessage(msg).
		Mark(ierr.ErrDatabase)
}
