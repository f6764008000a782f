package testutil

import (
	"fmt"

	cardmodels "accounts/internal/cards/models"
	loanmodels "accounts/internal/loans/models"
)

// TestMobileNumbers are the numbers the mock downstream services treat specially.
var TestMobileNumbers = struct {
	Known       string
	Unknown     string
	ServerError string
	Slow        string
	Malformed   string
}{
	Known:       "4354437687",
	Unknown:     "0000000000",
	ServerError: "5000000000",
	Slow:        "9999999999",
	Malformed:   "7777777777",
}

// CardDetailsBuilder provides a fluent interface for building card payloads.
type CardDetailsBuilder struct {
	card *cardmodels.CardDetails
}

// NewCardDetailsBuilder creates a credit card with a consistent limit split.
func NewCardDetailsBuilder(mobileNumber string) *CardDetailsBuilder {
	return &CardDetailsBuilder{
		card: &cardmodels.CardDetails{
			MobileNumber:    mobileNumber,
			CardNumber:      "100646930341",
			CardType:        "Credit Card",
			TotalLimit:      100000,
			AmountUsed:      1000,
			AvailableAmount: 99000,
		},
	}
}

func (b *CardDetailsBuilder) WithCardNumber(number string) *CardDetailsBuilder {
	b.card.CardNumber = number
	return b
}

func (b *CardDetailsBuilder) WithCardType(cardType string) *CardDetailsBuilder {
	b.card.CardType = cardType
	return b
}

// WithUsage sets the limit and used amount; the available amount follows.
func (b *CardDetailsBuilder) WithUsage(totalLimit, amountUsed int64) *CardDetailsBuilder {
	b.card.TotalLimit = totalLimit
	b.card.AmountUsed = amountUsed
	b.card.AvailableAmount = totalLimit - amountUsed
	return b
}

func (b *CardDetailsBuilder) Build() *cardmodels.CardDetails {
	card := *b.card
	return &card
}

// LoanDetailsBuilder provides a fluent interface for building loan payloads.
type LoanDetailsBuilder struct {
	loan *loanmodels.LoanDetails
}

// NewLoanDetailsBuilder creates a home loan with a consistent repayment split.
func NewLoanDetailsBuilder(mobileNumber string) *LoanDetailsBuilder {
	return &LoanDetailsBuilder{
		loan: &loanmodels.LoanDetails{
			MobileNumber:      mobileNumber,
			LoanNumber:        "548732457654",
			LoanType:          "Home Loan",
			TotalLoan:         100000,
			AmountPaid:        1000,
			OutstandingAmount: 99000,
		},
	}
}

func (b *LoanDetailsBuilder) WithLoanNumber(number string) *LoanDetailsBuilder {
	b.loan.LoanNumber = number
	return b
}

func (b *LoanDetailsBuilder) WithLoanType(loanType string) *LoanDetailsBuilder {
	b.loan.LoanType = loanType
	return b
}

// WithRepayment sets the loan total and paid amount; the outstanding amount follows.
func (b *LoanDetailsBuilder) WithRepayment(totalLoan, amountPaid int64) *LoanDetailsBuilder {
	b.loan.TotalLoan = totalLoan
	b.loan.AmountPaid = amountPaid
	b.loan.OutstandingAmount = totalLoan - amountPaid
	return b
}

func (b *LoanDetailsBuilder) Build() *loanmodels.LoanDetails {
	loan := *b.loan
	return &loan
}

// MobileNumberFor returns a distinct ten-digit mobile number for index i.
func MobileNumberFor(i int) string {
	return fmt.Sprintf("43%08d", i)
}
