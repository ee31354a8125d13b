package entity

import "sort"

// Nombres de sistema de los roles conocidos.
const (
	RoleAdministrators  = "Administrators"
	RoleForumModerators = "ForumModerators"
	RoleRegistered      = "Registered"
	RoleGuests          = "Guests"
	RoleVendors         = "Vendors"
)

// SystemRoles roles que toda instalación debe tener (los siembra storefront-admin seed-roles).
var SystemRoles = []CustomerRole{
	{Name: "Administrators", SystemName: RoleAdministrators, Active: true, IsSystemRole: true},
	{Name: "Forum Moderators", SystemName: RoleForumModerators, Active: true, IsSystemRole: true},
	{Name: "Registered", SystemName: RoleRegistered, Active: true, IsSystemRole: true},
	{Name: "Guests", SystemName: RoleGuests, Active: true, IsSystemRole: true},
	{Name: "Vendors", SystemName: RoleVendors, Active: true, IsSystemRole: true},
}

// CustomerRole categoría de clientes identificada por su nombre de sistema.
type CustomerRole struct {
	ID           int64
	Name         string
	SystemName   string
	Active       bool
	IsSystemRole bool
}

// RoleSet conjunto de roles de un cliente indexado por nombre de sistema. No tiene orden.
type RoleSet map[string]CustomerRole

// NewRoleSet construye un conjunto a partir de una lista de roles.
func NewRoleSet(roles ...CustomerRole) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r.SystemName] = r
	}
	return s
}

// Add agrega el rol; si ya estaba, lo reemplaza.
func (s *RoleSet) Add(role CustomerRole) {
	if *s == nil {
		*s = make(RoleSet)
	}
	(*s)[role.SystemName] = role
}

// Remove quita el rol y devuelve si estaba presente.
func (s RoleSet) Remove(systemName string) bool {
	if _, ok := s[systemName]; !ok {
		return false
	}
	delete(s, systemName)
	return true
}

// Has informa si el conjunto contiene el rol.
func (s RoleSet) Has(systemName string) bool {
	_, ok := s[systemName]
	return ok
}

// SystemNames lista los nombres de sistema ordenados (salida estable para logs y respuestas).
func (s RoleSet) SystemNames() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Slice devuelve los roles ordenados por nombre de sistema.
func (s RoleSet) Slice() []CustomerRole {
	out := make([]CustomerRole, 0, len(s))
	for _, name := range s.SystemNames() {
		out = append(out, s[name])
	}
	return out
}
