package inventory

import (
	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

// ProductView convierte un producto a su DTO de salida.
func ProductView(p *inventory.Product) dto.ProductResponse {
	return dto.ProductResponse{
		Code:         p.Code(),
		Name:         p.Name,
		Category:     p.Category,
		MinimumStock: p.MinimumStock,
		CurrentStock: p.CurrentStock(),
		IsCritical:   p.IsCritical(),
		WarehouseID:  p.WarehouseID,
	}
}

// MovementView convierte un movimiento a su DTO de salida.
func MovementView(m *inventory.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID(),
		Type:          m.Kind().String(),
		Timestamp:     m.Timestamp(),
		Quantity:      m.Quantity(),
		Delta:         inventory.SignedDelta(m),
		Justification: m.Justification(),
		ProductCode:   m.Product().Code(),
		ProductName:   m.Product().Name,
		UserID:        m.Actor().ID,
		UserName:      m.Actor().Name,
	}
}

// UserView usuario sin credenciales.
func UserView(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Login: u.Login, Role: u.Role}
}

func productViews(products []*inventory.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductView(p))
	}
	return out
}

func movementViews(movements []*inventory.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, MovementView(m))
	}
	return out
}
