package domain

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Actor es la identidad autenticada que ejecuta una operación. Se construye
// en la capa HTTP a partir del token y se pasa explícito a cada caso de uso;
// el núcleo nunca lee identidad de estado ambiente.
type Actor struct {
	ID         string
	Username   string
	Role       string // entity.RoleAdmin | entity.RoleUser
	Department string
}

// IsAdmin indica si el actor tiene rol administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }
