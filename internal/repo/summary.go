package repo

// Summary is the dashboard aggregate over the whole inventory.
type Summary struct {
	TotalProducts    int     `db:"total_products" json:"totalProducts"`
	TotalValue       float64 `db:"total_value" json:"totalValue"`
	LowStockProducts int     `db:"low_stock_products" json:"lowStockProducts"`
	RestocksPending  int     `db:"restocks_pending" json:"restocksPending"`
}
