package models

// Requests for the signal HTTP endpoints. Defined in domain for consistency and reuse.

type SignalRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required,alphanum,max=12"`
	Bars     int    `query:"bars" json:"bars" default:"100" validate:"gte=2,lte=1000"`
	Articles int    `query:"articles" json:"articles" default:"10" validate:"gte=1,lte=100"`
}

type SentimentRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required,alphanum,max=12"`
	Articles int    `query:"articles" json:"articles" default:"10" validate:"gte=1,lte=100"`
}

type BatchRequest struct {
	Symbols  string `query:"symbols" json:"symbols" validate:"required"`
	Bars     int    `query:"bars" json:"bars" default:"100" validate:"gte=2,lte=1000"`
	Articles int    `query:"articles" json:"articles" default:"10" validate:"gte=1,lte=100"`
}
