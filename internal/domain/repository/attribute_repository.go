package repository

import "context"

// AttributeRepository atributos de perfil (clave/valor) por cliente.
type AttributeRepository interface {
	// Save inserta o actualiza el valor; repetirlo con el mismo valor no tiene efecto adicional.
	Save(ctx context.Context, customerID int64, key, value string) error
	// Get devuelve el valor y si existe.
	Get(ctx context.Context, customerID int64, key string) (string, bool, error)
}
