package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
)

// MovementKind discriminador del movimiento. El valor es el que se persiste en movimientos.tipo.
type MovementKind string

// Tipos de movimiento.
const (
	KindStockIn    MovementKind = "INGRESO"
	KindStockOut   MovementKind = "EGRESO"
	KindAdjustment MovementKind = "AJUSTE"
)

// ParseKind acepta el tag persistido y sus equivalentes en inglés.
func ParseKind(tag string) (MovementKind, error) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "INGRESO", "STOCK_IN", "IN":
		return KindStockIn, nil
	case "EGRESO", "STOCK_OUT", "OUT":
		return KindStockOut, nil
	case "AJUSTE", "ADJUSTMENT", "ADJUST":
		return KindAdjustment, nil
	}
	return "", &domain.ValidationError{Field: "type", Message: fmt.Sprintf("tipo de movimiento desconocido %q", tag)}
}

func (k MovementKind) String() string { return string(k) }

// Movement es un registro inmutable de un cambio de stock.
// Los campos no se exportan: después de construido nada puede modificarlo.
type Movement struct {
	id            string
	kind          MovementKind
	timestamp     time.Time
	quantity      int
	product       *Product
	actor         *entity.User
	justification string
}

// clock permite fijar la hora en tests del paquete.
var clock = time.Now

// NewStockIn construye un ingreso. quantity debe ser > 0.
func NewStockIn(p *Product, quantity int, actor *entity.User) (*Movement, error) {
	if quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "el ingreso debe ser mayor a cero"}
	}
	return newMovement(KindStockIn, p, quantity, actor, "")
}

// NewStockOut construye un egreso. quantity debe ser > 0.
func NewStockOut(p *Product, quantity int, actor *entity.User) (*Movement, error) {
	if quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "el egreso debe ser mayor a cero"}
	}
	return newMovement(KindStockOut, p, quantity, actor, "")
}

// NewAdjustment construye un ajuste; quantity puede ser negativa pero no cero, y la justificación es obligatoria.
func NewAdjustment(p *Product, quantity int, justification string, actor *entity.User) (*Movement, error) {
	justification = strings.TrimSpace(justification)
	if justification == "" {
		return nil, &domain.ValidationError{Field: "justification", Message: "requerida para ajustes"}
	}
	if quantity == 0 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "el ajuste no puede ser cero"}
	}
	return newMovement(KindAdjustment, p, quantity, actor, justification)
}

func newMovement(kind MovementKind, p *Product, quantity int, actor *entity.User, justification string) (*Movement, error) {
	if p == nil || p.code == "" {
		return nil, &domain.ValidationError{Field: "product", Message: "producto sin registrar"}
	}
	if actor == nil {
		return nil, &domain.ValidationError{Field: "user", Message: "usuario requerido"}
	}
	if quantity > MaxStock || quantity < -MaxStock {
		return nil, &domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("la cantidad no puede superar %d", MaxStock)}
	}
	return &Movement{
		id:            uuid.New().String(),
		kind:          kind,
		timestamp:     clock(),
		quantity:      quantity,
		product:       p,
		actor:         actor,
		justification: justification,
	}, nil
}

func (m *Movement) ID() string { return m.id }
func (m *Movement) Kind() MovementKind { return m.kind }
func (m *Movement) Timestamp() time.Time { return m.timestamp }
func (m *Movement) Quantity() int { return m.quantity }
func (m *Movement) Product() *Product { return m.product }
func (m *Movement) Actor() *entity.User { return m.actor }
func (m *Movement) ActorID() int { return m.actor.ID }
func (m *Movement) Justification() string { return m.justification }

// SignedDelta efecto del movimiento sobre el stock: +q ingreso, -q egreso, q ajuste.
func SignedDelta(m *Movement) int {
	switch m.kind {
	case KindStockOut:
		return -m.quantity
	default:
		return m.quantity
	}
}

// PersistedQuantity cantidad tal como se guarda en movimientos.cantidad.
// Los egresos se guardan negativos; ingresos y ajustes con su signo natural.
func PersistedQuantity(m *Movement) int {
	if m.kind == KindStockOut {
		return -m.quantity
	}
	return m.quantity
}

// Audit línea de auditoría del movimiento.
func (m *Movement) Audit() string {
	return fmt.Sprintf("[%s] %s - Producto: %s - Cant: %d - Usuario: %s",
		m.timestamp.Format(time.RFC3339), m.kind, m.product.code, m.quantity, m.actor.Name)
}
