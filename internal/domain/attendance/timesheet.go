package attendance

import "github.com/shopspring/decimal"

const secondsPerDay = 24 * 60 * 60

var secondsPerHour = decimal.NewFromInt(3600)

// ZeroPolicy decides whether an all-zero punch reads as "unset" or as a real
// midnight. The legacy punch format overloaded 00:00:00: AM pairs used it as
// the unset sentinel while a 00:00:00 PM Out recorded a shift that ran until
// midnight. Both readings stay configurable rather than silently unified.
type ZeroPolicy struct {
	AMZeroUnset    bool
	PMOutZeroUnset bool
}

// DefaultZeroPolicy matches the legacy data: zero AM punches are unset, a
// zero PM Out is a real midnight.
func DefaultZeroPolicy() ZeroPolicy {
	return ZeroPolicy{AMZeroUnset: true, PMOutZeroUnset: false}
}

// ComputeWorkedHours derives the worked duration of one day from its four
// punches, in hours rounded to two decimals.
//
// Each half-day pair contributes out minus in; a negative span is read as
// crossing midnight and wrapped by a full day, so the result is never
// negative. A pair with a missing or unset endpoint contributes zero, never
// an error, and a pair with out equal to in contributes zero.
func ComputeWorkedHours(amIn, amOut, pmIn, pmOut *Clock, pol ZeroPolicy) decimal.Decimal {
	total := pairSeconds(amIn, amOut, pol.AMZeroUnset, pol.AMZeroUnset) +
		pairSeconds(pmIn, pmOut, true, pol.PMOutZeroUnset)

	return decimal.NewFromInt(int64(total)).Div(secondsPerHour).Round(2)
}

// WorkedHours computes the record's worked duration under pol.
func (r Record) WorkedHours(pol ZeroPolicy) decimal.Decimal {
	return ComputeWorkedHours(r.AMIn, r.AMOut, r.PMIn, r.PMOut, pol)
}

func pairSeconds(in, out *Clock, inZeroUnset, outZeroUnset bool) int {
	if in == nil || out == nil {
		return 0
	}
	if inZeroUnset && in.IsMidnight() {
		return 0
	}
	if outZeroUnset && out.IsMidnight() {
		return 0
	}
	span := out.Seconds() - in.Seconds()
	if span < 0 {
		span += secondsPerDay
	}
	return span
}
