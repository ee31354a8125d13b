package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, customer_guid, email, username, active, deleted, created_on_utc, last_activity_date_utc`

// GetByGUID obtiene el cliente con sus roles. nil, nil si no existe.
func (r *CustomerRepo) GetByGUID(ctx context.Context, guid uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_guid = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, guid).Scan(
		&c.ID, &c.GUID, &c.Email, &c.Username, &c.Active, &c.Deleted, &c.CreatedOnUTC, &c.LastActivityDateUTC,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by guid: %w", err)
	}
	c.CreatedOnUTC = c.CreatedOnUTC.UTC()
	c.LastActivityDateUTC = c.LastActivityDateUTC.UTC()

	roles, err := r.rolesOf(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Roles = entity.NewRoleSet(roles...)
	return &c, nil
}

func (r *CustomerRepo) rolesOf(ctx context.Context, customerID int64) ([]entity.CustomerRole, error) {
	query := `
		SELECT cr.id, cr.name, cr.system_name, cr.active, cr.is_system_role
		FROM customer_roles cr
		JOIN customer_role_mapping m ON m.customer_role_id = cr.id
		WHERE m.customer_id = $1`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer roles: %w", err)
	}
	defer rows.Close()
	var list []entity.CustomerRole
	for rows.Next() {
		var role entity.CustomerRole
		if err := rows.Scan(&role.ID, &role.Name, &role.SystemName, &role.Active, &role.IsSystemRole); err != nil {
			return nil, fmt.Errorf("scan customer role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// Create inserta el cliente y sus roles en una sola transacción y asigna customer.ID.
// Un GUID repetido devuelve domain.ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		query := `
			INSERT INTO customers (customer_guid, email, username, active, deleted, created_on_utc, last_activity_date_utc)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		var id int64
		if err := tx.QueryRow(ctx, query,
			customer.GUID, customer.Email, customer.Username, customer.Active, customer.Deleted,
			customer.CreatedOnUTC, customer.LastActivityDateUTC,
		).Scan(&id); err != nil {
			return err
		}
		for _, role := range customer.Roles.Slice() {
			if _, err := tx.Exec(ctx,
				`INSERT INTO customer_role_mapping (customer_id, customer_role_id) VALUES ($1, $2)`,
				id, role.ID,
			); err != nil {
				return fmt.Errorf("map role %s: %w", role.SystemName, err)
			}
		}
		customer.ID = id
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update persiste solo email y username. Active, Deleted y las fechas los gestionan otros
// flujos y nunca se reescriben desde aquí.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `UPDATE customers SET email = $2, username = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, customer.ID, customer.Email, customer.Username)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetRoleBySystemName obtiene un rol por nombre de sistema. nil, nil si no existe.
func (r *CustomerRepo) GetRoleBySystemName(ctx context.Context, systemName string) (*entity.CustomerRole, error) {
	query := `
		SELECT id, name, system_name, active, is_system_role
		FROM customer_roles WHERE system_name = $1`
	var role entity.CustomerRole
	err := r.q.QueryRow(ctx, query, systemName).Scan(
		&role.ID, &role.Name, &role.SystemName, &role.Active, &role.IsSystemRole,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by system name: %w", err)
	}
	return &role, nil
}
