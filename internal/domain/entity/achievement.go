package entity

import "time"

// Claves de logro y sus títulos.
const (
	AchievementFirstSale     = "first_sale"
	AchievementTenSales      = "ten_sales"
	AchievementFiftySales    = "fifty_sales"
	AchievementFirstPurchase = "first_purchase"
	AchievementTenPurchases  = "ten_purchases"
	AchievementInventory100  = "inventory_100"
	AchievementNoLowStock    = "no_low_stock"
)

// Achievement es un logro desbloqueado por una cuenta. A lo sumo una fila por
// par (cuenta, clave); el desbloqueo repetido es un no-op.
type Achievement struct {
	ID         string
	AccountID  string
	Key        string
	Title      string
	UnlockedAt time.Time
}
