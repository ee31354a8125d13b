package authentication

import "github.com/jhoicas/storefront-api/internal/domain/entity"

// Scope caché de resolución de una petición (o sesión lógica). Pertenece al caller,
// guarda como máximo un cliente y no se comparte entre goroutines.
type Scope struct {
	customer *entity.Customer
}

// NewScope crea un scope vacío.
func NewScope() *Scope {
	return &Scope{}
}

// Customer devuelve el cliente memorizado o nil.
func (s *Scope) Customer() *entity.Customer {
	if s == nil {
		return nil
	}
	return s.customer
}

// Forget vacía el scope (cierre de sesión). Es idempotente.
func (s *Scope) Forget() {
	if s == nil {
		return
	}
	s.customer = nil
}

func (s *Scope) remember(c *entity.Customer) {
	if s == nil {
		return
	}
	s.customer = c
}
