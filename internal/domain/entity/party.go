package entity

// Customer representa un cliente de la cuenta; referenciado por órdenes de venta.
type Customer struct {
	ID        string
	AccountID string
	Name      string
	Email     string
	Phone     string
}

// Supplier representa un proveedor de la cuenta; referenciado por órdenes de compra.
type Supplier struct {
	ID        string
	AccountID string
	Name      string
	Email     string
	Phone     string
}
