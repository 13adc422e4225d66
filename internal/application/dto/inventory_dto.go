package dto

import "time"

// StockInRequest body para POST /api/inventory/stock-in.
type StockInRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0,lte=2147483647"`
}

// StockOutRequest body para POST /api/inventory/stock-out.
type StockOutRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0,lte=2147483647"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments.
// Quantity puede ser negativa; la justificación es obligatoria.
type AdjustmentRequest struct {
	ProductCode   string `json:"product_code" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,ne=0,gte=-2147483647,lte=2147483647"`
	Justification string `json:"justification" validate:"required,max=500"`
}

// MovementResponse salida de un movimiento del historial.
type MovementResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	Quantity      int       `json:"quantity"`
	Delta         int       `json:"delta"`
	Justification string    `json:"justification,omitempty"`
	ProductCode   string    `json:"product_code"`
	ProductName   string    `json:"product_name"`
	UserID        int       `json:"user_id"`
	UserName      string    `json:"user_name"`
}

// MovementResultResponse resultado de registrar un movimiento: el movimiento y el stock resultante.
type MovementResultResponse struct {
	Movement MovementResponse `json:"movement"`
	Product  ProductResponse  `json:"product"`
}

// MovementListResponse historial de movimientos. Page solo viene en listados paginados.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
	Page  *PageResponse      `json:"page,omitempty"`
}

// SnapshotResponse estado completo (productos + historial) para exportar o persistir.
type SnapshotResponse struct {
	TakenAt   time.Time          `json:"taken_at"`
	Products  []ProductResponse  `json:"products"`
	Movements []MovementResponse `json:"movements"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto crítico.
type ReplenishmentSuggestionDTO struct {
	ProductCode        string `json:"product_code"`
	ProductName        string `json:"product_name"`
	CurrentStock       int    `json:"current_stock"`
	MinimumStock       int    `json:"minimum_stock"`
	IdealStock         int    `json:"ideal_stock"`         // MinimumStock * 1.5, redondeado hacia arriba
	SuggestedOrderQty  int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitsOutLast90Days int    `json:"units_out_last_90d"`
	Priority           int    `json:"priority"` // 1 = más urgente
}
