package models

import "time"

// Kind is the transaction category an M-PESA notification represents.
type Kind string

const (
	KindReceived          Kind = "received"
	KindSent              Kind = "sent"
	KindMerchantPayment   Kind = "merchant_payment"
	KindPaybillPayment    Kind = "paybill_payment"
	KindAirtimePurchase   Kind = "airtime_purchase"
	KindWithdrawal        Kind = "withdrawal"
	KindBalanceCheck      Kind = "balance_check"
	KindFailed            Kind = "failed"
	KindFulizaUsed        Kind = "fuliza_used"
	KindFulizaRepayment   Kind = "fuliza_repayment"
	KindMShwariDeposit    Kind = "mshwari_deposit"
	KindMShwariWithdrawal Kind = "mshwari_withdrawal"
)

// Status reports whether the notification describes a completed or a
// declined transaction.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// TransactionRecord is the structured result of parsing one notification.
//
// Optional monetary fields are pointers so that "not reported by the
// message" is distinguishable from a reported zero. Timestamp is the zero
// time when the message carried no date/time fragment. RawMessage always
// holds the original input text byte-for-byte.
type TransactionRecord struct {
	Kind           Kind      `json:"kind"`
	TransactionID  string    `json:"transactionId,omitempty"`
	Amount         *float64  `json:"amount,omitempty"`
	Counterparty   string    `json:"counterparty,omitempty"`
	CounterpartyID string    `json:"counterpartyId,omitempty"`
	Balance        *float64  `json:"balance,omitempty"`
	Cost           *float64  `json:"cost,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitzero"`
	Status         Status    `json:"status"`
	FailureReason  string    `json:"failureReason,omitempty"`
	RawMessage     string    `json:"rawMessage"`

	// Overdraft and savings extras reported by some templates.
	FulizaInterest    *float64   `json:"fulizaInterest,omitempty"`
	FulizaOutstanding *float64   `json:"fulizaOutstanding,omitempty"`
	FulizaLimit       *float64   `json:"fulizaLimit,omitempty"`
	FulizaDueDate     *time.Time `json:"fulizaDueDate,omitempty"`
	MShwariBalance    *float64   `json:"mshwariBalance,omitempty"`
	DailyLimit        *float64   `json:"dailyLimit,omitempty"`
}

// HasTimestamp reports whether the record carries a parsed date/time.
func (r *TransactionRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// BatchResult pairs one input line with its parse outcome. Error holds the
// failure message when the line could not be parsed.
type BatchResult struct {
	Line   int                `json:"line"`
	Record *TransactionRecord `json:"record,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// BatchReport summarises one batch run over a message file.
type BatchReport struct {
	RunID     string        `json:"runId"`
	Source    string        `json:"source"`
	Generated time.Time     `json:"generated"`
	Parsed    int           `json:"parsed"`
	Failed    int           `json:"failed"`
	Results   []BatchResult `json:"results"`
}
