package inventory

import (
	"context"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Un movimiento y el stock resultante del producto se guardan juntos o no se guarda nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MovementPublisher notifica movimientos ya persistidos (Kafka u otro broker).
// Es opcional: una falla se registra en el log y no revierte nada.
type MovementPublisher interface {
	PublishMovement(ctx context.Context, mov dto.MovementResponse) error
}

// Repositories agrupa los puertos que usa la sesión para cargar y persistir estado.
type Repositories struct {
	Products   repository.ProductRepository
	Movements  repository.MovementRepository
	Users      repository.UserRepository
	Warehouses repository.WarehouseRepository
	Tx         TxRunner
}
