package models

// CardDetails is the payload the cards service returns for a mobile number.
type CardDetails struct {
	MobileNumber    string `json:"mobileNumber"`
	CardNumber      string `json:"cardNumber"`
	CardType        string `json:"cardType"`
	TotalLimit      int64  `json:"totalLimit"`
	AmountUsed      int64  `json:"amountUsed"`
	AvailableAmount int64  `json:"availableAmount"`
}

// FetchRequest holds the arguments of a fetch call. Both values are opaque and
// only checked for presence.
type FetchRequest struct {
	CorrelationID string `validate:"notblank"`
	MobileNumber  string `validate:"notblank"`
}
