package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/repository"
	"github.com/jhoicas/gametech-stock/pkg/logger"
)

const (
	// maxCodeAttempts intentos de alta antes de devolver ErrConflict.
	maxCodeAttempts = 5
	// NewProductJustification justificación del ajuste que carga el stock inicial de un alta.
	NewProductJustification = "Ingreso nuevo"
)

// Session es la fachada del stock: productos, historial, depósitos y usuarios de una ejecución.
// Los movimientos de un mismo producto se serializan (memoria + persistencia); las altas también.
type Session struct {
	mu         sync.RWMutex
	products   *inventory.ProductRegistry
	ledger     *inventory.Ledger
	warehouses *inventory.WarehouseRegistry
	users      map[int]*entity.User
	activeUser int

	regMu sync.Mutex
	locks *keyedMutex

	repos     Repositories
	publisher MovementPublisher
	log       *logger.Logger
}

// SessionOption configura dependencias opcionales de la sesión.
type SessionOption func(*Session)

// WithPublisher publica cada movimiento persistido.
func WithPublisher(p MovementPublisher) SessionOption {
	return func(s *Session) { s.publisher = p }
}

// WithLogger reemplaza el logger (por defecto no escribe nada).
func WithLogger(l *logger.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession arma la sesión sobre estado ya cargado. Con repos vacío todo queda en memoria.
func NewSession(
	products *inventory.ProductRegistry,
	ledger *inventory.Ledger,
	warehouses *inventory.WarehouseRegistry,
	users []*entity.User,
	repos Repositories,
	opts ...SessionOption,
) *Session {
	s := &Session{
		products:   products,
		ledger:     ledger,
		warehouses: warehouses,
		users:      make(map[int]*entity.User, len(users)),
		locks:      newKeyedMutex(),
		repos:      repos,
		log:        logger.Nop(),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterProductInput alta de producto con stock inicial opcional.
type RegisterProductInput struct {
	inventory.NewProductInput
	InitialStock int
	UserID       int // 0 = usuario activo; solo se usa si InitialStock > 0
}

// RegisterProduct asigna el siguiente código, persiste el producto y, si hay stock inicial,
// lo registra como ajuste "Ingreso nuevo".
func (s *Session) RegisterProduct(ctx context.Context, in RegisterProductInput) (dto.ProductResponse, error) {
	if in.InitialStock < 0 {
		return dto.ProductResponse{}, &domain.ValidationError{Field: "initial_stock", Message: "no puede ser negativo"}
	}
	if err := in.Validate(); err != nil {
		return dto.ProductResponse{}, err
	}
	if in.WarehouseID != nil {
		if _, err := s.warehouses.Find(*in.WarehouseID); err != nil {
			return dto.ProductResponse{}, &domain.ValidationError{Field: "warehouse_id", Message: err.Error()}
		}
	} else if def, err := s.warehouses.Default(); err == nil {
		id := def.ID
		in.WarehouseID = &id
	}
	if in.InitialStock > 0 {
		if _, err := s.resolveUser(in.UserID); err != nil {
			return dto.ProductResponse{}, err
		}
	}

	code, err := s.registerWithRetry(ctx, in.NewProductInput)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	s.log.Info().Str("code", code).Str("name", in.Name).Msg("producto registrado")

	if in.InitialStock > 0 {
		res, err := s.ApplyAdjustment(ctx, code, in.InitialStock, NewProductJustification, in.UserID)
		if err != nil {
			return s.productView(code), err
		}
		return res.Product, nil
	}
	return s.productView(code), nil
}

func (s *Session) registerWithRetry(ctx context.Context, in inventory.NewProductInput) (string, error) {
	s.regMu.Lock()
	defer s.regMu.Unlock()

	lastCode := ""
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.registerOnce(ctx, in)
		if err == nil {
			return code, nil
		}
		if errors.Is(err, domain.ErrDuplicate) {
			lastCode = code
			s.log.Warn().Str("code", code).Int("attempt", attempt).Msg("código tomado por otro escritor, reintentando")
			continue
		}
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		s.log.Error().Err(err).Str("code", code).Msg("no se pudo persistir el producto")
		return "", domain.NewPersistenceError("crear producto", err)
	}
	return "", &domain.ConflictError{Code: lastCode}
}

// registerOnce da de alta con el lock del código tomado hasta persistir o retirar el producto,
// así ningún movimiento llega a registrarse sobre un alta que después se retira.
// Con regMu tomado, NextCode no cambia entre la consulta y el Register.
func (s *Session) registerOnce(ctx context.Context, in inventory.NewProductInput) (string, error) {
	s.mu.RLock()
	code := s.products.NextCode()
	s.mu.RUnlock()

	unlock := s.locks.Lock(code)
	defer unlock()

	s.mu.Lock()
	p, err := s.products.Register(in)
	s.mu.Unlock()
	if err != nil {
		return code, err
	}
	if s.repos.Products == nil {
		return code, nil
	}
	if err := s.repos.Products.Create(ctx, p); err != nil {
		s.mu.Lock()
		s.products.Withdraw(code)
		s.mu.Unlock()
		return code, err
	}
	return code, nil
}

// ApplyStockIn registra un ingreso de quantity unidades.
func (s *Session) ApplyStockIn(ctx context.Context, code string, quantity, userID int) (dto.MovementResultResponse, error) {
	return s.record(ctx, code, userID, func(p *inventory.Product, u *entity.User) (*inventory.Movement, error) {
		return inventory.NewStockIn(p, quantity, u)
	})
}

// ApplyStockOut registra un egreso; rechazado con InsufficientStockError si no alcanza el stock.
func (s *Session) ApplyStockOut(ctx context.Context, code string, quantity, userID int) (dto.MovementResultResponse, error) {
	return s.record(ctx, code, userID, func(p *inventory.Product, u *entity.User) (*inventory.Movement, error) {
		return inventory.NewStockOut(p, quantity, u)
	})
}

// ApplyAdjustment registra un ajuste con signo y justificación obligatoria.
func (s *Session) ApplyAdjustment(ctx context.Context, code string, quantity int, justification string, userID int) (dto.MovementResultResponse, error) {
	return s.record(ctx, code, userID, func(p *inventory.Product, u *entity.User) (*inventory.Movement, error) {
		return inventory.NewAdjustment(p, quantity, justification, u)
	})
}

type movementBuilder func(p *inventory.Product, u *entity.User) (*inventory.Movement, error)

// record resuelve producto y usuario, pasa el movimiento por el ledger y luego lo persiste.
// Si la persistencia falla el movimiento queda en memoria y se devuelve *domain.PersistenceError.
func (s *Session) record(ctx context.Context, code string, userID int, build movementBuilder) (dto.MovementResultResponse, error) {
	user, err := s.resolveUser(userID)
	if err != nil {
		return dto.MovementResultResponse{}, err
	}

	// el producto se busca con el lock tomado: un alta en curso puede retirarse
	unlock := s.locks.Lock(inventory.NormalizeCode(code))
	defer unlock()

	s.mu.RLock()
	p, err := s.products.FindByCode(code)
	s.mu.RUnlock()
	if err != nil {
		return dto.MovementResultResponse{}, err
	}

	m, err := build(p, user)
	if err != nil {
		s.log.Info().Err(err).Str("code", p.Code()).Msg("movimiento rechazado")
		return dto.MovementResultResponse{}, err
	}
	s.mu.Lock()
	err = s.ledger.Record(m)
	s.mu.Unlock()
	if err != nil {
		s.log.Info().Err(err).Str("code", p.Code()).Str("type", m.Kind().String()).Msg("movimiento rechazado")
		return dto.MovementResultResponse{}, err
	}
	s.log.Debug().Msg(m.Audit())

	s.mu.RLock()
	res := dto.MovementResultResponse{Movement: MovementView(m), Product: ProductView(p)}
	s.mu.RUnlock()

	if err := s.persist(ctx, m, res.Product.CurrentStock); err != nil {
		s.log.Error().Err(err).Str("movement_id", m.ID()).Msg("movimiento aplicado en memoria pero no persistido")
		return res, domain.NewPersistenceError("registrar movimiento", err)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishMovement(ctx, res.Movement); err != nil {
			s.log.Warn().Err(err).Str("movement_id", m.ID()).Msg("no se pudo publicar el movimiento")
		}
	}
	return res, nil
}

func (s *Session) persist(ctx context.Context, m *inventory.Movement, stock int) error {
	if s.repos.Tx == nil {
		return nil
	}
	row := inventory.RowFromMovement(m)
	return s.repos.Tx.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := movRepo.Create(ctx, row); err != nil {
			return err
		}
		return productRepo.UpdateStock(ctx, row.ProductCode, stock)
	})
}

// resolveUser userID 0 usa el usuario activo.
func (s *Session) resolveUser(userID int) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID == 0 {
		userID = s.activeUser
	}
	if userID == 0 {
		return nil, fmt.Errorf("sin usuario activo: %w: %w", domain.ErrUserNotFound, domain.ErrNotFound)
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("usuario %d: %w: %w", userID, domain.ErrUserNotFound, domain.ErrNotFound)
	}
	return u, nil
}

// RememberUser agrega o actualiza un usuario en el directorio de la sesión.
func (s *Session) RememberUser(u *entity.User) {
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
}

// SetActiveUser fija el usuario al que se atribuyen los movimientos sin usuario explícito.
func (s *Session) SetActiveUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("usuario %d: %w: %w", id, domain.ErrUserNotFound, domain.ErrNotFound)
	}
	s.activeUser = id
	return nil
}

// ActiveUser devuelve el usuario activo, si hay.
func (s *Session) ActiveUser() (dto.UserResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[s.activeUser]
	if !ok {
		return dto.UserResponse{}, false
	}
	return UserView(u), true
}

// Products todos los productos en orden de alta.
func (s *Session) Products() []dto.ProductResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return productViews(s.products.List())
}

// FindProduct busca por código (sin distinguir mayúsculas).
func (s *Session) FindProduct(code string) (dto.ProductResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.products.FindByCode(code)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return ProductView(p), nil
}

// CriticalProducts productos con stock por debajo del mínimo.
func (s *Session) CriticalProducts() []dto.ProductResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return productViews(s.products.Critical())
}

// History movimientos en orden de registro.
func (s *Session) History() []dto.MovementResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return movementViews(s.ledger.History())
}

// ProductHistory movimientos de un producto.
func (s *Session) ProductHistory(code string) ([]dto.MovementResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.products.FindByCode(code)
	if err != nil {
		return nil, err
	}
	return movementViews(s.ledger.ForProduct(p.Code())), nil
}

// Snapshot copia consistente de productos e historial.
func (s *Session) Snapshot() dto.SnapshotResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.SnapshotResponse{
		TakenAt:   time.Now(),
		Products:  productViews(s.products.List()),
		Movements: movementViews(s.ledger.History()),
	}
}

// Warehouses depósitos conocidos, marcando el de por defecto.
func (s *Session) Warehouses() []dto.WarehouseResponse {
	def, _ := s.warehouses.Default()
	list := s.warehouses.List()
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarehouseResponse{
			ID:        w.ID,
			Location:  w.Location,
			Capacity:  w.Capacity,
			IsDefault: w.ID == def.ID,
		})
	}
	return out
}

// ReloadWarehouses vuelve a leer los depósitos desde el repositorio.
func (s *Session) ReloadWarehouses(ctx context.Context) (int, error) {
	if s.repos.Warehouses == nil {
		return len(s.warehouses.List()), nil
	}
	n, err := s.warehouses.Reload(ctx, s.repos.Warehouses.List)
	if err != nil {
		s.log.Error().Err(err).Msg("recarga de depósitos fallida")
		return 0, domain.NewPersistenceError("listar depósitos", err)
	}
	s.log.Info().Int("count", n).Msg("depósitos recargados")
	return n, nil
}

func (s *Session) productView(code string) dto.ProductResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.products.FindByCode(code)
	if err != nil {
		return dto.ProductResponse{Code: strings.ToUpper(code)}
	}
	return ProductView(p)
}
