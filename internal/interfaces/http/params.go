package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const dayLayout = "2006-01-02"

// queryDay lee el parámetro ?date=YYYY-MM-DD; sin parámetro devuelve el día
// de hoy. Error si el formato no parsea.
func queryDay(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dayLayout, raw)
}

// queryDateRange lee ?from= y ?to= (YYYY-MM-DD). Sin parámetros devuelve
// punteros nil (sin filtro).
func queryDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(dayLayout, raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(dayLayout, raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
