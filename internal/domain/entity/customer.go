package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer representa un cliente del storefront.
// GUID es el identificador sustituto estable: se asigna una vez y nunca se reutiliza.
type Customer struct {
	ID                  int64
	GUID                uuid.UUID
	Email               string
	Username            string
	Roles               RoleSet
	Active              bool
	Deleted             bool
	CreatedOnUTC        time.Time
	LastActivityDateUTC time.Time
}

// IsRegistered informa si el cliente pertenece al rol "Registered".
func (c *Customer) IsRegistered() bool {
	return c.Roles.Has(RoleRegistered)
}

// IsGuest informa si el cliente pertenece al rol "Guests".
func (c *Customer) IsGuest() bool {
	return c.Roles.Has(RoleGuests)
}

// CanAuthenticate: activo, no eliminado y registrado.
func (c *Customer) CanAuthenticate() bool {
	return c != nil && c.Active && !c.Deleted && c.IsRegistered()
}
