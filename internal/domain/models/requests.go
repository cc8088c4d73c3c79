package models

// HistoryRequest selects the tail of the public history; n == 0 returns
// the full series.
type HistoryRequest struct {
	N int `query:"n" default:"0" validate:"gte=0,lte=36500"`
}

// LatestQuote is the API shape of the most recent point.
type LatestQuote struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Date   string `json:"date"`
	Price  int64  `json:"price"`
}
