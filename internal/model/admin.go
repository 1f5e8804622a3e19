package model

// AdminDashboard is the aggregate view behind the staff page.
type AdminDashboard struct {
	Revenue          float64          `json:"revenue"`
	Currency         string           `json:"currency"`
	UserCount        int              `json:"userCount"`
	OrderCount       int              `json:"orderCount"`
	RecentUsers      []User           `json:"recentUsers"`
	RecentOrders     []OrderListEntry `json:"recentOrders"`
	RecentPaidOrders []OrderListEntry `json:"recentPaidOrders"`
}
