package parser

import (
	"regexp"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

// classificationRule ties one kind to the pattern that distinguishes its
// template. A rule may also name a forbidding pattern for templates whose
// vocabulary is a subset of another kind's.
type classificationRule struct {
	kind   models.Kind
	match  *regexp.Regexp
	forbid *regexp.Regexp
}

// classificationRules is evaluated in order and the first match wins.
// Order is deliberate:
//   - failed templates share verbs with success templates ("send", "pay")
//     and must be tested before any of them;
//   - Fuliza repayment mentions "from your M-PESA" and must precede the
//     generic received/sent checks;
//   - paybill is a textual superset of sent ("sent to X for account Y"),
//     so it is tested before sent.
var classificationRules = []classificationRule{
	{
		kind:  models.KindFailed,
		match: regexp.MustCompile(`(?i)\bFailed\b.*?(insufficient\s+(?:funds|balance)|do\s+not\s+have\s+enough\s+money|reached\s+your\s+Fuliza\s+M-PESA\s+limit|Fuliza\s+M-PESA\s+limit\s+is\s+not\s+available)`),
	},
	{
		kind:  models.KindFulizaUsed,
		match: regexp.MustCompile(`(?i)Fuliza\s+M-PESA\s+amount\s+is\s+Ksh`),
	},
	{
		kind:  models.KindFulizaRepayment,
		match: regexp.MustCompile(`(?i)from\s+your\s+M-PESA\s+has\s+been\s+used\s+to\s+(?:fully|partially)\s+pay\s+your\s+outstanding\s+Fuliza`),
	},
	{
		kind:  models.KindReceived,
		match: regexp.MustCompile(`(?i)You\s+have\s+received\s+Ksh`),
	},
	{
		kind:  models.KindMShwariWithdrawal,
		match: regexp.MustCompile(`(?i)Ksh[\d,.]+\s+transferred\s+from\s+M-Shwari\s+account`),
	},
	{
		kind:  models.KindMShwariDeposit,
		match: regexp.MustCompile(`(?i)Ksh[\d,.]+\s+transferred\s+to\s+M-Shwari\s+account`),
	},
	{
		kind:  models.KindPaybillPayment,
		match: regexp.MustCompile(`(?i)sent\s+to\s+.+\s+for\s+account\s+\S+`),
	},
	{
		kind:   models.KindSent,
		match:  regexp.MustCompile(`(?i)Ksh[\d,.]+\s+sent\s+to\s+`),
		forbid: regexp.MustCompile(`(?i)\bfor\s+account\b`),
	},
	{
		kind:  models.KindMerchantPayment,
		match: regexp.MustCompile(`(?i)Ksh[\d,.]+\s+paid\s+to\s+`),
	},
	{
		kind:  models.KindAirtimePurchase,
		match: regexp.MustCompile(`(?i)You\s+bought\s+Ksh[\d,.]+\s+of\s+airtime`),
	},
	{
		kind:  models.KindWithdrawal,
		match: regexp.MustCompile(`(?i)Withdraw\s+Ksh[\d,.]+\s+from\s+`),
	},
	{
		kind:  models.KindBalanceCheck,
		match: regexp.MustCompile(`(?i)Your\s+account\s+balance\s+was:?\s+M-PESA\s+Account\s*:?\s*Ksh`),
	},
}

// classify maps raw text to the first kind whose rule matches, or fails
// with UnrecognizedMessageError carrying the original text.
func classify(text string) (models.Kind, error) {
	for _, rule := range classificationRules {
		if !rule.match.MatchString(text) {
			continue
		}
		if rule.forbid != nil && rule.forbid.MatchString(text) {
			continue
		}
		return rule.kind, nil
	}
	return "", &UnrecognizedMessageError{Text: text}
}
