package dto

import "time"

// CustomerResponse perfil mínimo del cliente autenticado.
type CustomerResponse struct {
	GUID      string   `json:"customer_guid"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Roles     []string `json:"roles"`
	Active    bool     `json:"active"`
}

// SignInRequest entrada para iniciar sesión con el cliente ya resuelto por la aserción.
type SignInRequest struct {
	Persistent bool `json:"persistent"`
}

// SessionResponse token de sesión emitido.
type SessionResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	Persistent bool      `json:"persistent"`
}

// RoleResponse rol de cliente (listado administrativo).
type RoleResponse struct {
	Name       string `json:"name"`
	SystemName string `json:"system_name"`
	Active     bool   `json:"active"`
}
