package identity

import "github.com/google/uuid"

// ClaimKind conjunto cerrado de claims que el storefront reconcilia.
type ClaimKind int

const (
	ClaimSubject ClaimKind = iota + 1
	ClaimEmail
	ClaimUsername
	ClaimGivenName
	ClaimFamilyName
)

// String nombre legible para logs.
func (k ClaimKind) String() string {
	switch k {
	case ClaimSubject:
		return "subject"
	case ClaimEmail:
		return "email"
	case ClaimUsername:
		return "username"
	case ClaimGivenName:
		return "given_name"
	case ClaimFamilyName:
		return "family_name"
	default:
		return "unknown"
	}
}

func (k ClaimKind) valid() bool {
	return k >= ClaimSubject && k <= ClaimFamilyName
}

// Assertion prueba de identidad emitida por un autenticador externo.
// Es de solo lectura una vez construida; los claims fuera del conjunto conocido se ignoran.
type Assertion struct {
	claims map[ClaimKind]string
}

// NewAssertion construye una aserción con los claims dados.
func NewAssertion(claims map[ClaimKind]string) *Assertion {
	a := &Assertion{claims: make(map[ClaimKind]string, len(claims))}
	for k, v := range claims {
		if k.valid() {
			a.claims[k] = v
		}
	}
	return a
}

// FromNamedClaims mapea un payload dinámico (p. ej. claims de un JWT) a la aserción tipada.
// names indica qué nombre de claim corresponde a cada tipo; solo se aceptan valores string.
func FromNamedClaims(raw map[string]any, names map[ClaimKind]string) *Assertion {
	a := &Assertion{claims: make(map[ClaimKind]string, len(names))}
	for kind, name := range names {
		if !kind.valid() || name == "" {
			continue
		}
		if s, ok := raw[name].(string); ok {
			a.claims[kind] = s
		}
	}
	return a
}

// Claim devuelve el valor del claim y si estaba presente.
func (a *Assertion) Claim(kind ClaimKind) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.claims[kind]
	return v, ok
}

// SubjectGUID devuelve el identificador del sujeto o uuid.Nil si falta o no es un UUID.
func (a *Assertion) SubjectGUID() uuid.UUID {
	v, ok := a.Claim(ClaimSubject)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// IsAnonymous: sin aserción o sin sujeto utilizable.
func (a *Assertion) IsAnonymous() bool {
	return a.SubjectGUID() == uuid.Nil
}
