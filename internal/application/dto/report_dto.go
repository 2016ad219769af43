package dto

import "time"

// StockReportResponse reporte de stock con totales agregados.
type StockReportResponse struct {
	Data    []ItemResponse     `json:"data"`
	Summary StockReportSummary `json:"summary"`
}

// StockReportSummary totales del reporte de stock.
type StockReportSummary struct {
	TotalOnHand    int64 `json:"total_on_hand"`
	TotalIssued    int64 `json:"total_issued"`
	TotalRemaining int64 `json:"total_remaining"`
	LowStock       int   `json:"low_stock"` // artículos con remaining <= umbral
	TotalItems     int   `json:"total_items"`
}

// MovementResponse movimiento del libro de stock (entrada o salida).
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemCode  string    `json:"item_code"`
	ItemName  string    `json:"item_name"`
	ActorName string    `json:"actor_name"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Date      time.Time `json:"date"`
}

// MovementReportResponse reporte de movimientos con totales.
type MovementReportResponse struct {
	Data    []MovementResponse    `json:"data"`
	Summary MovementReportSummary `json:"summary"`
}

// MovementReportSummary totales de un reporte de movimientos.
type MovementReportSummary struct {
	TotalQuantity int64 `json:"total_quantity"`
	TotalItems    int   `json:"total_items"`
}

// RequestReportResponse reporte de solicitudes comprometidas.
type RequestReportResponse struct {
	Data    []RequestResponse   `json:"data"`
	Summary RecordReportSummary `json:"summary"`
}

// ProposalReportResponse reporte de propuestas comprometidas.
type ProposalReportResponse struct {
	Data    []ProposalResponse  `json:"data"`
	Summary RecordReportSummary `json:"summary"`
}

// RecordReportSummary totales por estado.
type RecordReportSummary struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}
