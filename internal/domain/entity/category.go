package entity

import "time"

// Category agrupa artículos de stock (ej. "ATK", "Alat Kebersihan").
// Number es el prefijo numérico de los códigos de artículo de la categoría
// (código = "<Number>.<secuencia>"); se asigna incremental al crearla.
type Category struct {
	ID        string
	Number    int    // único, prefijo de código de artículo
	Name      string // único
	CreatedAt time.Time
}
