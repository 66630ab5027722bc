package usage

import "errors"

// ErrQuotaExhausted is returned when a user has no LLM calls left this month.
var ErrQuotaExhausted = errors.New("monthly quota exhausted")

// DefaultAllowance is the number of LLM calls granted per month.
const DefaultAllowance = 200
