package entity

// Warehouse representa un depósito físico donde se guarda mercadería.
type Warehouse struct {
	ID       int
	Location string
	Capacity int // 0 = desconocida
}
