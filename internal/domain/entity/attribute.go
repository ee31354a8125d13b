package entity

// Claves de atributos genéricos del cliente (tabla generic_attributes, grupo "Customer").
const (
	AttributeFirstName = "FirstName"
	AttributeLastName  = "LastName"
)
