package models

// DeckStat summarizes the scheduling state of a single deck plus its
// review history.
type DeckStat struct {
	DeckID        string  `json:"deck_id"`
	Title         string  `json:"title"`
	TotalCards    int     `json:"total_cards"`
	CardsDue      int     `json:"cards_due"`
	TotalLapses   int     `json:"total_lapses"`
	AvgEase       float64 `json:"avg_ease"`
	AvgInterval   float64 `json:"avg_interval_days"`
	TotalReviews  int     `json:"total_reviews"`
	RemainingDays int     `json:"remaining_days"`
}

// ResponseStat counts reviews by response type.
type ResponseStat struct {
	Response     string  `json:"response"`
	TotalReviews int     `json:"total_reviews"`
	AvgInterval  float64 `json:"avg_interval_days"`
	AvgEase      float64 `json:"avg_ease"`
}

// DailyReviewStat counts reviews per calendar day.
type DailyReviewStat struct {
	Day          string `json:"day"`
	TotalReviews int    `json:"total_reviews"`
}
