package entity

// Store es un canal de venta o región. Las bodegas se relacionan con tiendas
// para determinar disponibilidad regional.
type Store struct {
	ID   int
	Name string
}
