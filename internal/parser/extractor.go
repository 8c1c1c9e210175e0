package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

// Field names produced by extraction. These are the keys of the rawFields
// map handed to the Normalizer and Assembler.
const (
	fieldTransactionID  = "transaction_id"
	fieldAmount         = "amount"
	fieldCounterparty   = "counterparty_name"
	fieldCounterpartyID = "counterparty_identifier"
	fieldBalance        = "balance"
	fieldCost           = "transaction_cost"
	fieldDate           = "date"
	fieldTime           = "time"
	fieldFailureReason  = "failure_reason"
	fieldInterest       = "fuliza_interest"
	fieldOutstanding    = "fuliza_outstanding"
	fieldFulizaLimit    = "fuliza_limit"
	fieldDueDate        = "fuliza_due_date"
	fieldMShwariBalance = "mshwari_balance"
	fieldDailyLimit     = "daily_limit"
)

// fieldRule locates one field inside a message: the pattern anchors on the
// fixed phrases of the template and the group index selects the capture.
type fieldRule struct {
	field    string
	pattern  *regexp.Regexp
	group    int
	required bool
}

type rawFields map[string]string

// Anchors shared by every template.
var (
	reTransactionID = regexp.MustCompile(`\b([A-Z0-9]{10})\s+[Cc]onfirmed`)
	reDate          = regexp.MustCompile(`\bon\s+(\d{1,2}/\d{1,2}/\d{2,4})\b`)
	reTime          = regexp.MustCompile(`\bat\s+(\d{1,2}:\d{2}\s*[AaPp][Mm]|\d{1,2}:\d{2})\b`)
	reBalance       = regexp.MustCompile(`(?i)New\s+(?:M-PESA\s+)?balance\s+is\s+Ksh\s*([\d,.]+)`)
	reCost          = regexp.MustCompile(`(?i)Transaction\s+cost[,.]?\s*Ksh\s*([\d,.]+)`)
	reDailyLimit    = regexp.MustCompile(`(?i)Amount\s+you\s+can\s+transact\s+within\s+the\s+day\s+is\s+([\d,.]+)`)
	reMShwariBal    = regexp.MustCompile(`(?i)M-Shwari\s+(?:saving\s+account\s+)?balance\s+is\s+Ksh\s*([\d,.]+)`)
)

// Kind-specific anchors. Counterparty patterns capture the name in group 1
// and the numeric identifier (phone, account, till) in group 2 when the
// template carries one.
var (
	reReceived  = regexp.MustCompile(`(?i)received\s+Ksh([\d,.]+)\s+from\s+(.+?)(?:\s+(\d{9,13}))?\s+on\b`)
	reSent      = regexp.MustCompile(`(?i)Ksh([\d,.]+)\s+sent\s+to\s+(.+?)(?:\s+(\d{9,13}))?\s+on\b`)
	rePaybill   = regexp.MustCompile(`(?i)Ksh([\d,.]+)\s+sent\s+to\s+(.+?)\s+for\s+account\s+(\S+?)[.,]?\s+on\b`)
	reMerchant  = regexp.MustCompile(`(?i)Ksh([\d,.]+)\s+paid\s+to\s+([^.]+?)(?:\s+[Tt]ill\s+(?:[Nn]umber\s+)?(\d+))?\.?\s+on\b`)
	reAirtime   = regexp.MustCompile(`(?i)bought\s+Ksh([\d,.]+)\s+of\s+airtime`)
	reWithdraw  = regexp.MustCompile(`(?i)Withdraw\s+Ksh([\d,.]+)\s+from\b`)
	reBalCheck  = regexp.MustCompile(`(?i)account\s+balance\s+was:?\s+M-PESA\s+Account\s*:?\s*Ksh([\d,.]+)`)
	reFailedWhy = regexp.MustCompile(`(?i)Failed\.?\s+([^.]+)`)

	reFulizaUsed   = regexp.MustCompile(`(?i)Fuliza\s+M-PESA\s+amount\s+is\s+Ksh\s*([\d,.]+)`)
	reFulizaPaid   = regexp.MustCompile(`(?i)Ksh\s*([\d,.]+)\s+from\s+your\s+M-PESA\s+has\s+been\s+used`)
	reFulizaInt    = regexp.MustCompile(`(?i)Interest\s+charged\s+Ksh\s*([\d,.]+)`)
	reFulizaOwed   = regexp.MustCompile(`(?i)outstanding\s+amount\s+is\s+Ksh\s*([\d,.]+)`)
	reFulizaLimit  = regexp.MustCompile(`(?i)Fuliza\s+M-PESA\s+limit\s+is\s+Ksh\s*([\d,.]+)`)
	reFulizaDue    = regexp.MustCompile(`(?i)due\s+on\s+(\d{1,2}/\d{1,2}/\d{2,4})`)
	reMShwariMoved = regexp.MustCompile(`(?i)Ksh([\d,.]+)\s+transferred\s+(?:from|to)\s+M-Shwari`)
)

// Rules shared across kinds. The transaction identifier is extracted when
// the "XXX Confirmed." prefix is present but is not mandatory: operator
// exports routinely strip it, and a message remains parseable without it.
var commonRules = []fieldRule{
	{field: fieldTransactionID, pattern: reTransactionID, group: 1},
	{field: fieldBalance, pattern: reBalance, group: 1},
	{field: fieldCost, pattern: reCost, group: 1},
	{field: fieldDailyLimit, pattern: reDailyLimit, group: 1},
	{field: fieldMShwariBalance, pattern: reMShwariBal, group: 1},
}

// extractionRules holds the per-kind rule set: one rule per expected field,
// with the mandatory/optional split the template dictates.
var extractionRules = map[models.Kind][]fieldRule{
	models.KindReceived: {
		{field: fieldAmount, pattern: reReceived, group: 1, required: true},
		{field: fieldCounterparty, pattern: reReceived, group: 2, required: true},
		{field: fieldCounterpartyID, pattern: reReceived, group: 3},
		{field: fieldDate, pattern: reDate, group: 1, required: true},
		{field: fieldTime, pattern: reTime, group: 1, required: true},
	},
	models.KindSent: {
		{field: fieldAmount, pattern: reSent, group: 1, required: true},
		{field: fieldCounterparty, pattern: reSent, group: 2, required: true},
		{field: fieldCounterpartyID, pattern: reSent, group: 3},
		{field: fieldDate, pattern: reDate, group: 1, required: true},
		{field: fieldTime, pattern: reTime, group: 1, required: true},
	},
	models.KindPaybillPayment: {
		{field: fieldAmount, pattern: rePaybill, group: 1, required: true},
		{field: fieldCounterparty, pattern: rePaybill, group: 2, required: true},
		{field: fieldCounterpartyID, pattern: rePaybill, group: 3, required: true},
		{field: fieldDate, pattern: reDate, group: 1, required: true},
		{field: fieldTime, pattern: reTime, group: 1, required: true},
	},
	models.KindMerchantPayment: {
		{field: fieldAmount, pattern: reMerchant, group: 1, required: true},
		{field: fieldCounterparty, pattern: reMerchant, group: 2, required: true},
		{field: fieldCounterpartyID, pattern: reMerchant, group: 3},
		{field: fieldDate, pattern: reDate, group: 1, required: true},
		{field: fieldTime, pattern: reTime, group: 1, required: true},
	},
	models.KindAirtimePurchase: {
		{field: fieldAmount, pattern: reAirtime, group: 1, required: true},
		{field: fieldDate, pattern: reDate, group: 1, required: true},
		{field: fieldTime, pattern: reTime, group: 1, required: true},
	},
	models.KindWithdrawal: {
		{field: fieldAmount, pattern: reWithdraw, group: 1, required: true},
		{field: fieldDate, pattern: reDate, group: 1, required: true},
		{field: fieldTime, pattern: reTime, group: 1, required: true},
	},
	models.KindBalanceCheck: {
		{field: fieldBalance, pattern: reBalCheck, group: 1, required: true},
		{field: fieldDate, pattern: reDate, group: 1},
		{field: fieldTime, pattern: reTime, group: 1},
	},
	models.KindFailed: {
		{field: fieldFailureReason, pattern: reFailedWhy, group: 1, required: true},
		{field: fieldDate, pattern: reDate, group: 1},
		{field: fieldTime, pattern: reTime, group: 1},
	},
	models.KindFulizaUsed: {
		{field: fieldAmount, pattern: reFulizaUsed, group: 1, required: true},
		{field: fieldInterest, pattern: reFulizaInt, group: 1},
		{field: fieldOutstanding, pattern: reFulizaOwed, group: 1},
		{field: fieldDueDate, pattern: reFulizaDue, group: 1},
	},
	models.KindFulizaRepayment: {
		{field: fieldAmount, pattern: reFulizaPaid, group: 1, required: true},
		{field: fieldFulizaLimit, pattern: reFulizaLimit, group: 1},
	},
	models.KindMShwariDeposit: {
		{field: fieldAmount, pattern: reMShwariMoved, group: 1, required: true},
		{field: fieldDate, pattern: reDate, group: 1},
		{field: fieldTime, pattern: reTime, group: 1},
	},
	models.KindMShwariWithdrawal: {
		{field: fieldAmount, pattern: reMShwariMoved, group: 1, required: true},
		{field: fieldDate, pattern: reDate, group: 1},
		{field: fieldTime, pattern: reTime, group: 1},
	},
}

// extract applies the kind's rule set and returns the raw substrings for
// each located field. A missing mandatory field fails with
// MissingFieldError; missing optional fields are simply absent from the map.
func extract(text string, kind models.Kind) (rawFields, error) {
	fields := rawFields{}

	for _, rule := range commonRules {
		if v, ok := applyRule(text, rule); ok {
			fields[rule.field] = v
		}
	}

	for _, rule := range extractionRules[kind] {
		v, ok := applyRule(text, rule)
		if !ok {
			if rule.required {
				return nil, &MissingFieldError{Kind: kind, Field: rule.field}
			}
			continue
		}
		fields[rule.field] = v
	}

	return fields, nil
}

func applyRule(text string, rule fieldRule) (string, bool) {
	m := rule.pattern.FindStringSubmatch(text)
	if m == nil || rule.group >= len(m) {
		return "", false
	}
	v := strings.TrimSpace(m[rule.group])
	if v == "" {
		return "", false
	}
	return strings.TrimSuffix(v, "."), true
}
