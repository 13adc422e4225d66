package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

// ReplenishmentWindow período de egresos que se usa para priorizar.
const ReplenishmentWindow = 90 * 24 * time.Hour

// Replenishment devuelve los productos críticos con la cantidad sugerida para volver a 1.5x el mínimo.
// Prioridad: más egresos en la ventana, luego mayor déficit, luego código.
func (s *Session) Replenishment(now time.Time) []dto.ReplenishmentSuggestionDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	critical := s.products.Critical()
	if len(critical) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}
	}

	since := now.Add(-ReplenishmentWindow)
	out := make(map[string]int, len(critical))
	for _, m := range s.ledger.History() {
		if m.Kind() == inventory.KindStockOut && !m.Timestamp().Before(since) {
			out[m.Product().Code()] += m.Quantity()
		}
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(critical))
	for _, p := range critical {
		ideal := (p.MinimumStock*3 + 1) / 2 // ceil(min * 1.5)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductCode:        p.Code(),
			ProductName:        p.Name,
			CurrentStock:       p.CurrentStock(),
			MinimumStock:       p.MinimumStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  ideal - p.CurrentStock(),
			UnitsOutLast90Days: out[p.Code()],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsOutLast90Days != b.UnitsOutLast90Days {
			return a.UnitsOutLast90Days > b.UnitsOutLast90Days
		}
		defA := a.MinimumStock - a.CurrentStock
		defB := b.MinimumStock - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.ProductCode < b.ProductCode
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions
}
