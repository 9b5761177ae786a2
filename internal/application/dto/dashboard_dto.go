package dto

import "time"

// DashboardSummaryDTO response of GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalCustomers    int                  `json:"total_customers"`
	Bookings          int                  `json:"bookings"`        // Booking + Retail
	ConversionRate    float64              `json:"conversion_rate"` // percent, one decimal
	PendingFollowUps  int                  `json:"pending_follow_ups"`
	StageCounts       []StageCountDTO      `json:"stage_counts"`
	TodayFollowUps    []CustomerSummaryDTO `json:"today_follow_ups"`
	TomorrowFollowUps []CustomerSummaryDTO `json:"tomorrow_follow_ups"`
	GeneratedAt       time.Time            `json:"generated_at"`
}

// StageCountDTO customers per pipeline stage.
type StageCountDTO struct {
	Stage string `json:"stage"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DailyReportDTO response of GET /api/reports/daily.
type DailyReportDTO struct {
	Date         string               `json:"date"` // YYYY-MM-DD
	Contacted    []CustomerSummaryDTO `json:"contacted"`
	StageChanges []StageChangeDTO     `json:"stage_changes"`
}

// StageChangeDTO a customer whose stage moved on the report day.
type StageChangeDTO struct {
	Customer CustomerSummaryDTO `json:"customer"`
	From     *string            `json:"from"`
	To       string             `json:"to"`
	At       time.Time          `json:"at"`
}
