package models

// LoanDetails is the payload the loans service returns for a mobile number.
type LoanDetails struct {
	MobileNumber      string `json:"mobileNumber"`
	LoanNumber        string `json:"loanNumber"`
	LoanType          string `json:"loanType"`
	TotalLoan         int64  `json:"totalLoan"`
	AmountPaid        int64  `json:"amountPaid"`
	OutstandingAmount int64  `json:"outstandingAmount"`
}

// FetchRequest holds the arguments of a fetch call. Both values are opaque and
// only checked for presence.
type FetchRequest struct {
	CorrelationID string `validate:"notblank"`
	MobileNumber  string `validate:"notblank"`
}
