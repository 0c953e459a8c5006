package crm

import (
	"context"
	"database/sql"
	"errors"

	"callbridge/pkg/utils"
)

// PostgresRepo implements Repository over database/sql (pgx stdlib driver).
//
// NOTE: This repository assumes the following tables exist:
// - customers (id, name, phone)
// - contacts (id, name, primary_contact_no)
// - contact_links (contact_id, link_type, link_id)
// - communications
//
// Phone matching is done on digit-only projections of the stored columns so
// stored formatting never affects lookups.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) FindContactByPhone(ctx context.Context, digits string) (Contact, bool, error) {
	if digits == "" {
		return Contact{}, false, nil
	}
	const q = `
SELECT id, name, primary_contact_no
FROM contacts
WHERE nullif(regexp_replace(primary_contact_no, '[^0-9]', '', 'g'), '') IS NOT NULL
  AND (
    position($1 in regexp_replace(primary_contact_no, '[^0-9]', '', 'g')) > 0
    OR position(regexp_replace(primary_contact_no, '[^0-9]', '', 'g') in $1) > 0
  )
LIMIT 1
`
	var c Contact
	if err := r.db.QueryRowContext(ctx, q, digits).Scan(&c.ID, &c.Name, &c.PrimaryContactNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, false, nil
		}
		return Contact{}, false, err
	}
	return c, true, nil
}

func (r *PostgresRepo) CustomerForContact(ctx context.Context, contactID string) (Customer, bool, error) {
	const q = `
SELECT cu.id, cu.name, coalesce(cu.phone, '')
FROM contact_links cl
JOIN customers cu ON cu.id = cl.link_id
WHERE cl.contact_id = $1 AND cl.link_type = $2
LIMIT 1
`
	var cu Customer
	if err := r.db.QueryRowContext(ctx, q, contactID, LinkTypeCustomer).Scan(&cu.ID, &cu.Name, &cu.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, false, nil
		}
		return Customer{}, false, err
	}
	return cu, true, nil
}

func (r *PostgresRepo) FindCustomerByPhone(ctx context.Context, digits string) (Customer, bool, error) {
	if digits == "" {
		return Customer{}, false, nil
	}
	const q = `
SELECT id, name, coalesce(phone, '')
FROM customers
WHERE nullif(regexp_replace(phone, '[^0-9]', '', 'g'), '') IS NOT NULL
  AND (
    position($1 in regexp_replace(phone, '[^0-9]', '', 'g')) > 0
    OR position(regexp_replace(phone, '[^0-9]', '', 'g') in $1) > 0
  )
LIMIT 1
`
	var cu Customer
	if err := r.db.QueryRowContext(ctx, q, digits).Scan(&cu.ID, &cu.Name, &cu.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, false, nil
		}
		return Customer{}, false, err
	}
	return cu, true, nil
}

func (r *PostgresRepo) CreateCommunication(ctx context.Context, c Communication) error {
	// One transaction per webhook request; a failed insert leaves no partial row.
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO communications (
  id, subject, type, status, content, customer_id, call_id, duration_seconds, communication_date, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
)
`
		_, err := tx.ExecContext(ctx, q,
			c.ID,
			c.Subject,
			c.Type,
			c.Status,
			c.Content,
			c.CustomerID,
			c.CallID,
			c.DurationSeconds,
			c.CommunicationDate,
			c.CreatedAt,
		)
		return err
	})
}

func (r *PostgresRepo) GetCommunication(ctx context.Context, id string) (Communication, error) {
	const q = `
SELECT id, subject, type, status, content, customer_id, call_id, duration_seconds, communication_date, created_at
FROM communications
WHERE id = $1
`
	var c Communication
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID,
		&c.Subject,
		&c.Type,
		&c.Status,
		&c.Content,
		&c.CustomerID,
		&c.CallID,
		&c.DurationSeconds,
		&c.CommunicationDate,
		&c.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Communication{}, ErrNotFound
		}
		return Communication{}, err
	}
	return c, nil
}

func (r *PostgresRepo) ListCommunications(ctx context.Context, limit, offset int) ([]Communication, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const q = `
SELECT id, subject, type, status, content, customer_id, call_id, duration_seconds, communication_date, created_at
FROM communications
ORDER BY communication_date DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Communication
	for rows.Next() {
		var c Communication
		if err := rows.Scan(
			&c.ID,
			&c.Subject,
			&c.Type,
			&c.Status,
			&c.Content,
			&c.CustomerID,
			&c.CallID,
			&c.DurationSeconds,
			&c.CommunicationDate,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
