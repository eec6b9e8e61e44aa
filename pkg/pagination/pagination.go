package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request. The wire
// parameters are skip and limit.
type Params struct {
	Limit int
	Skip  int
}

// FromContext extracts pagination parameters from the echo context using the
// package default limit.
func FromContext(c echo.Context) Params {
	return WithDefault(c, DefaultLimit)
}

// WithDefault extracts pagination parameters, applying defaultLimit when the
// client does not specify one. Limits are clamped to MaxLimit and skip is
// clamped to zero.
func WithDefault(c echo.Context, defaultLimit int) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}

	return Params{Limit: limit, Skip: skip}
}

// SQL returns the LIMIT and OFFSET clause for SQL queries.
func (p Params) SQL() string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.Limit, p.Skip)
}

// Slice returns the half-open index range [from, to) that p selects from a
// list of n items. In-memory stores use this to mirror the SQL behavior.
func (p Params) Slice(n int) (int, int) {
	from := p.Skip
	if from > n {
		from = n
	}
	to := from + p.Limit
	if to > n {
		to = n
	}
	return from, to
}
