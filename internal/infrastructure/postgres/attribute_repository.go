package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.AttributeRepository = (*AttributeRepo)(nil)

// keyGroupCustomer grupo de atributos de perfil de cliente.
const keyGroupCustomer = "Customer"

// AttributeRepo atributos genéricos clave/valor de clientes.
type AttributeRepo struct {
	q Querier
}

// NewAttributeRepository construye el adaptador.
func NewAttributeRepository(q Querier) *AttributeRepo {
	return &AttributeRepo{q: q}
}

// Save inserta o reemplaza el valor del atributo.
func (r *AttributeRepo) Save(ctx context.Context, customerID int64, key, value string) error {
	query := `
		INSERT INTO generic_attributes (entity_id, key_group, key, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entity_id, key_group, key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.q.Exec(ctx, query, customerID, keyGroupCustomer, key, value); err != nil {
		return fmt.Errorf("save attribute %s: %w", key, err)
	}
	return nil
}

// Get devuelve el valor y si existe.
func (r *AttributeRepo) Get(ctx context.Context, customerID int64, key string) (string, bool, error) {
	query := `
		SELECT value FROM generic_attributes
		WHERE entity_id = $1 AND key_group = $2 AND key = $3`
	var value string
	err := r.q.QueryRow(ctx, query, customerID, keyGroupCustomer, key).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get attribute %s: %w", key, err)
	}
	return value, true, nil
}
