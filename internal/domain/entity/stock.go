package entity

// Stock representa una bodega (almacén) con nombre único. Puede estar
// relacionada con cero o más tiendas (stores) para disponibilidad regional.
type Stock struct {
	ID       int
	UUID     string
	Name     string
	IsActive bool
	// StoreNames son los nombres de las tiendas relacionadas. Se llena solo
	// en las consultas que hacen join con stock_stores.
	StoreNames []string
}
