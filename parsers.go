package optparse

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// param returns the single parameter of a parse call, or the empty string
// when the option was given without one
func (info *ParamInfo) param() string {
	if len(info.Params) == 0 {
		return ""
	}
	return strings.TrimSpace(info.Params[0])
}

// ParseInt converts the parameter to an int
func ParseInt(ctx context.Context, info *ParamInfo) (any, error) {
	return strconv.Atoi(info.param())
}

// ParseIntRange returns a parse callback which accepts integers in
// [lo, hi]
func ParseIntRange(lo, hi int) ParseFunc {
	return func(ctx context.Context, info *ParamInfo) (any, error) {
		n, err := strconv.Atoi(info.param())
		if err != nil {
			return nil, err
		}
		if n < lo || n > hi {
			return nil, &constraintError{item: ItemRangeConstraint, name: info.Name, args: []any{n, lo, hi}}
		}
		return n, nil
	}
}

// ParseFloat converts the parameter to a float64
func ParseFloat(ctx context.Context, info *ParamInfo) (any, error) {
	return strconv.ParseFloat(info.param(), 64)
}

// ParseBool converts the parameter to a bool. A niladic option is true.
func ParseBool(ctx context.Context, info *ParamInfo) (any, error) {
	if len(info.Params) == 0 {
		return true, nil
	}
	return strconv.ParseBool(info.param())
}

// ParseDuration converts the parameter to a time.Duration
func ParseDuration(ctx context.Context, info *ParamInfo) (any, error) {
	return time.ParseDuration(info.param())
}

// ParseTime converts the parameter to a time.Time. Most common date
// formats are recognized.
func ParseTime(ctx context.Context, info *ParamInfo) (any, error) {
	return dateparse.ParseAny(info.param())
}

// ParseURL converts the parameter to an absolute *url.URL
func ParseURL(ctx context.Context, info *ParamInfo) (any, error) {
	u, err := url.Parse(info.param())
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, &constraintError{item: ItemURLConstraint, name: info.Name, args: []any{info.param()}}
	}
	return u, nil
}
