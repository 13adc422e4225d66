package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/gametech-stock/internal/domain"
)

const codePrefix = "P"

// ProductRegistry productos indexados por código, en orden de alta.
// No tiene locks propios: el facade serializa las escrituras.
type ProductRegistry struct {
	products []*Product
	byCode   map[string]*Product
	reserved map[string]struct{} // códigos tomados fuera de este proceso
}

// NewProductRegistry crea un registro vacío.
func NewProductRegistry() *ProductRegistry {
	return &ProductRegistry{
		byCode:   make(map[string]*Product),
		reserved: make(map[string]struct{}),
	}
}

// Load agrega productos ya persistidos (con código) respetando el orden.
func (r *ProductRegistry) Load(products ...*Product) error {
	for _, p := range products {
		if p == nil || p.code == "" {
			return &domain.ValidationError{Field: "code", Message: "producto persistido sin código"}
		}
		if _, exists := r.byCode[p.code]; exists {
			return &domain.ConflictError{Code: p.code}
		}
		r.add(p)
	}
	return nil
}

// Register da de alta un producto con stock 0 y le asigna NextCode. Los choques con otros
// escritores se detectan al persistir (domain.ErrDuplicate).
func (r *ProductRegistry) Register(in NewProductInput) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	code := r.NextCode()
	p := NewProduct(in)
	if err := p.assignCode(code); err != nil {
		return nil, err
	}
	r.add(p)
	return p, nil
}

// NextCode máximo sufijo numérico entre los códigos conocidos + 1, con al menos 3 dígitos.
func (r *ProductRegistry) NextCode() string {
	highest := 0
	for code := range r.byCode {
		if n, ok := parseCode(code); ok && n > highest {
			highest = n
		}
	}
	for code := range r.reserved {
		if n, ok := parseCode(code); ok && n > highest {
			highest = n
		}
	}
	return FormatCode(highest + 1)
}

// ReserveCode marca un código como usado por otro escritor para que NextCode lo saltee.
func (r *ProductRegistry) ReserveCode(code string) {
	r.reserved[code] = struct{}{}
}

// Withdraw retira un alta que no pudo persistirse. El código queda reservado.
// Solo es válido para productos sin movimientos: el facade lo llama con el lock del código tomado.
func (r *ProductRegistry) Withdraw(code string) {
	p, ok := r.byCode[code]
	if !ok {
		return
	}
	delete(r.byCode, code)
	for i, cur := range r.products {
		if cur == p {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}
	r.ReserveCode(code)
}

// FindByCode busca un producto por código.
func (r *ProductRegistry) FindByCode(code string) (*Product, error) {
	p, ok := r.byCode[NormalizeCode(code)]
	if !ok {
		return nil, fmt.Errorf("producto %q: %w", code, domain.ErrNotFound)
	}
	return p, nil
}

// Lookup adaptador para RebuildFrom.
func (r *ProductRegistry) Lookup(code string) (*Product, bool) {
	p, ok := r.byCode[code]
	return p, ok
}

// List productos en orden de alta.
func (r *ProductRegistry) List() []*Product {
	out := make([]*Product, len(r.products))
	copy(out, r.products)
	return out
}

// Critical productos con stock por debajo del mínimo, en orden de alta.
func (r *ProductRegistry) Critical() []*Product {
	var out []*Product
	for _, p := range r.products {
		if IsCritical(p) {
			out = append(out, p)
		}
	}
	return out
}

// Len cantidad de productos.
func (r *ProductRegistry) Len() int { return len(r.products) }

func (r *ProductRegistry) add(p *Product) {
	r.products = append(r.products, p)
	r.byCode[p.code] = p
}

// NormalizeCode forma canónica de un código ingresado por el usuario (" p001" -> "P001").
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FormatCode P + número con relleno a 3 dígitos (P001 ... P999, P1000).
func FormatCode(n int) string {
	return fmt.Sprintf("%s%03d", codePrefix, n)
}

func parseCode(code string) (int, bool) {
	if !strings.HasPrefix(code, codePrefix) || len(code) < len(codePrefix)+1 {
		return 0, false
	}
	n, err := strconv.Atoi(code[len(codePrefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
