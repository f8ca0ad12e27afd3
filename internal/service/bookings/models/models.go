package models

// DailyRevenue is one date's slice of the revenue report.
type DailyRevenue struct {
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// RevenueReport aggregates confirmed bookings over a date range.
// Cancelled bookings contribute nothing.
type RevenueReport struct {
	From         string         `json:"from"`
	To           string         `json:"to"`
	PricePerHour float64        `json:"pricePerHour"`
	TotalHours   float64        `json:"totalHours"`
	Bookings     int            `json:"bookings"`
	Total        float64        `json:"total"`
	PerDate      []DailyRevenue `json:"perDate"`
}
