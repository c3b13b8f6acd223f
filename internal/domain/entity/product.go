package entity

// ProductConcrete referencia de solo lectura a un producto concreto del
// catálogo (este módulo no es dueño de los productos, solo lee sus ids).
type ProductConcrete struct {
	ID         int
	AbstractID int
	SKU        string
}

// ProductAbstract referencia de solo lectura a un producto abstracto,
// relacionado uno-a-muchos con productos concretos.
type ProductAbstract struct {
	ID  int
	SKU string
}
