package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelstore-backend/internal/domains/address/model"
)

const addressColumns = `
	id, user_id, label, full_name, line1, line2,
	city, state, postal_code, country, phone,
	is_default, created_at, updated_at`

// PostgresRepository implements AddressRepository on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance.
func NewPostgresRepository(db *pgxpool.Pool) AddressRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	address, err := r.scanAddress(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address by id: %w", err)
	}
	return address, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*model.Address{}
	for rows.Next() {
		address, err := r.scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, address *model.Address) error {
	query := `
		INSERT INTO addresses (
			id, user_id, label, full_name, line1, line2,
			city, state, postal_code, country, phone, is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		address.ID, address.UserID, address.Label, address.FullName, address.Line1, address.Line2,
		address.City, address.State, address.PostalCode, address.Country, address.Phone, address.IsDefault,
	).Scan(&address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, address *model.Address) error {
	query := `
		UPDATE addresses
		SET label = $2, full_name = $3, line1 = $4, line2 = $5,
		    city = $6, state = $7, postal_code = $8, country = $9,
		    phone = $10, is_default = $11, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		address.ID, address.Label, address.FullName, address.Line1, address.Line2,
		address.City, address.State, address.PostalCode, address.Country,
		address.Phone, address.IsDefault,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddressNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddressNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE addresses SET is_default = false WHERE user_id = $1 AND is_default = true`, userID)
	if err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanAddress(row pgx.Row) (*model.Address, error) {
	address := &model.Address{}
	err := row.Scan(
		&address.ID, &address.UserID, &address.Label, &address.FullName, &address.Line1, &address.Line2,
		&address.City, &address.State, &address.PostalCode, &address.Country, &address.Phone,
		&address.IsDefault, &address.CreatedAt, &address.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return address, nil
}
