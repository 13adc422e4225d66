package dto

// CreateProductRequest entrada para dar de alta un producto. El código lo asigna el sistema.
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Category     string `json:"category" validate:"required,min=1,max=100"`
	MinimumStock int    `json:"minimum_stock" validate:"min=0,max=2147483647"`
	WarehouseID  *int   `json:"warehouse_id" validate:"omitempty,gt=0"`
	InitialStock int    `json:"initial_stock" validate:"min=0,max=2147483647"` // entra como ajuste "Ingreso nuevo"
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	MinimumStock int    `json:"minimum_stock"`
	CurrentStock int    `json:"current_stock"`
	IsCritical   bool   `json:"is_critical"`
	WarehouseID  *int   `json:"warehouse_id,omitempty"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
