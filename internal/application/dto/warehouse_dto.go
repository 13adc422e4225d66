package dto

// WarehouseResponse salida de un depósito.
type WarehouseResponse struct {
	ID        int    `json:"id"`
	Location  string `json:"location"`
	Capacity  int    `json:"capacity"`
	IsDefault bool   `json:"is_default"`
}

// WarehouseReloadResponse resultado de recargar los depósitos.
type WarehouseReloadResponse struct {
	Loaded int `json:"loaded"`
}
