// Package period maps named period tokens to concrete calendar date ranges
// and resolves the matching comparison windows.
package period

import (
	"time"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

// Token selects a predefined reporting window relative to the current day.
type Token string

const (
	TokenToday     Token = "today"
	TokenYesterday Token = "yesterday"
	TokenMTD       Token = "mtd"
	TokenYTD       Token = "ytd"
	TokenLastMonth Token = "last-month"
	TokenLast30    Token = "last-30"
	TokenLast7     Token = "last-7"
)

// ComparisonMode selects the comparison window relative to the current one.
type ComparisonMode string

const (
	// ModeLastPeriod compares against the immediately preceding window of
	// matching length (elapsed-length for mtd/ytd).
	ModeLastPeriod ComparisonMode = "last-period"
	// ModeLastYear compares against the same window one calendar year back.
	ModeLastYear ComparisonMode = "last-year"
)

// ParseToken returns the token for a raw query value. Unknown values map to
// TokenToday: an unrecognized period is a permissive default, not an error.
func ParseToken(s string) Token {
	switch t := Token(s); t {
	case TokenToday, TokenYesterday, TokenMTD, TokenYTD, TokenLastMonth, TokenLast30, TokenLast7:
		return t
	default:
		return TokenToday
	}
}

// ParseMode returns the comparison mode for a raw query value, defaulting
// to ModeLastPeriod.
func ParseMode(s string) ComparisonMode {
	if ComparisonMode(s) == ModeLastYear {
		return ModeLastYear
	}
	return ModeLastPeriod
}

// Resolve maps a token to its inclusive date range. Bounds are local
// midnight instants of the first and last calendar day of the window.
func Resolve(token Token, now time.Time) entity.TimeRange {
	today := midnight(now)
	switch token {
	case TokenYesterday:
		y := today.AddDate(0, 0, -1)
		return entity.TimeRange{From: y, To: y}
	case TokenMTD:
		return entity.TimeRange{From: firstOfMonth(today), To: today}
	case TokenYTD:
		return entity.TimeRange{From: firstOfYear(today), To: today}
	case TokenLastMonth:
		first := firstOfMonth(today).AddDate(0, -1, 0)
		last := firstOfMonth(today).AddDate(0, 0, -1)
		return entity.TimeRange{From: first, To: last}
	case TokenLast30:
		return entity.TimeRange{From: today.AddDate(0, 0, -29), To: today}
	case TokenLast7:
		return entity.TimeRange{From: today.AddDate(0, 0, -6), To: today}
	case TokenToday:
		return entity.TimeRange{From: today, To: today}
	default:
		return entity.TimeRange{From: today, To: today}
	}
}

// ResolveComparison maps a (token, mode) pair to the comparison window.
//
// ModeLastYear shifts the resolved window back one calendar year with
// month and day preserved; a leap-day bound drifting to Mar 1 is accepted.
// ModeLastPeriod picks the contiguous immediately-preceding window of
// matching length, mirroring elapsed days within the cycle for mtd/ytd.
func ResolveComparison(token Token, mode ComparisonMode, now time.Time) entity.TimeRange {
	if mode == ModeLastYear {
		cur := Resolve(token, now)
		return entity.TimeRange{
			From: cur.From.AddDate(-1, 0, 0),
			To:   cur.To.AddDate(-1, 0, 0),
		}
	}

	today := midnight(now)
	switch token {
	case TokenYesterday:
		d := today.AddDate(0, 0, -2)
		return entity.TimeRange{From: d, To: d}
	case TokenMTD:
		// Same elapsed day count, starting day 1 of the previous month.
		from := firstOfMonth(today).AddDate(0, -1, 0)
		return entity.TimeRange{From: from, To: from.AddDate(0, 0, today.Day()-1)}
	case TokenYTD:
		return entity.TimeRange{
			From: firstOfYear(today).AddDate(-1, 0, 0),
			To:   today.AddDate(-1, 0, 0),
		}
	case TokenLastMonth:
		first := firstOfMonth(today).AddDate(0, -2, 0)
		last := firstOfMonth(today).AddDate(0, -1, -1)
		return entity.TimeRange{From: first, To: last}
	case TokenLast30:
		// the 30-day window 31-60 days back
		return entity.TimeRange{From: today.AddDate(0, 0, -60), To: today.AddDate(0, 0, -31)}
	case TokenLast7:
		// the 7-day window 8-14 days back
		return entity.TimeRange{From: today.AddDate(0, 0, -14), To: today.AddDate(0, 0, -8)}
	default:
		// today and unknown tokens compare against yesterday
		d := today.AddDate(0, 0, -1)
		return entity.TimeRange{From: d, To: d}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func firstOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
