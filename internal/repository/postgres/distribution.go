package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/repository"
)

const distributionColumns = `id, item_id, item_name, quantity, recipient_name, recipient_contact,
	distributed_date, expected_return_date, status, returned_date, condition_on_return`

type distributionRepository struct {
	db *sql.DB
}

func NewDistributionRepository(db *sql.DB) repository.DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) Save(ctx context.Context, d domain.Distribution) error {
	query := `INSERT INTO distributions (` + distributionColumns + `, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          ON CONFLICT (id) DO UPDATE SET
	              item_id = EXCLUDED.item_id,
	              item_name = EXCLUDED.item_name,
	              quantity = EXCLUDED.quantity,
	              expected_return_date = EXCLUDED.expected_return_date,
	              status = EXCLUDED.status,
	              returned_date = EXCLUDED.returned_date,
	              condition_on_return = EXCLUDED.condition_on_return,
	              updated_on = EXCLUDED.updated_on`
	logger.DatabaseCall("SaveDistribution", "INSERT INTO distributions ... ON CONFLICT", "id", d.ID)
	res, err := r.db.ExecContext(ctx, query,
		d.ID, d.ItemID, d.ItemName, d.Quantity, d.RecipientName, d.RecipientContact,
		d.DistributedDate, nullDate(d.ExpectedReturnDate), d.Status, nullDate(d.ReturnedDate),
		d.ConditionOnReturn, time.Now())
	var rows int64
	if err == nil {
		rows, _ = res.RowsAffected()
	}
	logger.DatabaseResult("SaveDistribution", rows, err, "id", d.ID)
	return err
}

// Delete withdraws a distribution that was never published. Missing rows
// are not an error.
func (r *distributionRepository) Delete(ctx context.Context, id string) error {
	logger.DatabaseCall("DeleteDistribution", "DELETE FROM distributions WHERE id = $1", "id", id)
	res, err := r.db.ExecContext(ctx, `DELETE FROM distributions WHERE id = $1`, id)
	var rows int64
	if err == nil {
		rows, _ = res.RowsAffected()
	}
	logger.DatabaseResult("DeleteDistribution", rows, err, "id", id)
	return err
}

func (r *distributionRepository) List(ctx context.Context) ([]domain.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions ORDER BY distributed_date DESC, created_on DESC`
	logger.DatabaseCall("ListDistributions", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListDistributions", 0, err)
		return nil, err
	}
	defer rows.Close()

	dists := []domain.Distribution{}
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, err
		}
		dists = append(dists, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("ListDistributions", int64(len(dists)), nil)
	return dists, nil
}

func (r *distributionRepository) MarkOverdue(ctx context.Context, asOf time.Time) ([]string, error) {
	query := `
		UPDATE distributions
		SET status = 'overdue',
		    updated_on = NOW()
		WHERE status = 'distributed'
		  AND expected_return_date IS NOT NULL
		  AND expected_return_date < $1
		RETURNING id
	`
	logger.DatabaseCall("MarkOverdueDistributions", "UPDATE distributions SET status = 'overdue'")
	rows, err := r.db.QueryContext(ctx, query, domain.DateString(asOf))
	if err != nil {
		logger.DatabaseResult("MarkOverdueDistributions", 0, err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan overdue distribution: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("MarkOverdueDistributions", int64(len(ids)), nil)
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDistribution(row rowScanner) (domain.Distribution, error) {
	var (
		d                  domain.Distribution
		distributed        time.Time
		expected, returned sql.NullTime
	)
	err := row.Scan(&d.ID, &d.ItemID, &d.ItemName, &d.Quantity, &d.RecipientName, &d.RecipientContact,
		&distributed, &expected, &d.Status, &returned, &d.ConditionOnReturn)
	if err != nil {
		return domain.Distribution{}, err
	}
	d.DistributedDate = domain.DateString(distributed)
	if expected.Valid {
		d.ExpectedReturnDate = domain.DateString(expected.Time)
	}
	if returned.Valid {
		d.ReturnedDate = domain.DateString(returned.Time)
	}
	return d, nil
}

func nullDate(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
