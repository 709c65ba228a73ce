package model

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func castScalar(kind Kind, key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch kind {
	case KindBool:
		out, err := cast.ToBoolE(value)
		if err != nil {
			return nil, coerceWrapError(err, key, "model: cast to bool")
		}
		return out, nil
	case KindInt:
		out, err := cast.ToIntE(value)
		if err != nil {
			return nil, coerceWrapError(err, key, "model: cast to int")
		}
		return out, nil
	case KindFloat:
		out, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, coerceWrapError(err, key, "model: cast to float")
		}
		return out, nil
	case KindString:
		out, err := cast.ToStringE(value)
		if err != nil {
			return nil, coerceWrapError(err, key, "model: cast to string")
		}
		return out, nil
	}
	return nil, coerceError(key, fmt.Sprintf("model: unsupported scalar kind %q", kind))
}

// castDate renders a date or datetime value in loc. Input is either a
// parseable string, a time.Time, or a {date, timezone} map whose date is
// interpreted in the named timezone before being rendered in loc.
func castDate(kind Kind, key string, value any, loc *time.Location) (any, error) {
	if value == nil {
		return nil, nil
	}
	layout := dateLayout
	if kind == KindDateTime {
		layout = dateTimeLayout
	}
	switch typed := value.(type) {
	case time.Time:
		return typed.In(loc).Format(layout), nil
	case string:
		parsed, err := dateparse.ParseIn(typed, loc)
		if err != nil {
			return nil, coerceWrapError(err, key, "model: parse date string")
		}
		return parsed.In(loc).Format(layout), nil
	case map[string]any:
		raw, err := cast.ToStringE(typed["date"])
		if err != nil || raw == "" {
			return nil, coerceError(key, "model: date map requires a date member")
		}
		parseLoc := loc
		if tz, ok := typed["timezone"]; ok {
			name, err := cast.ToStringE(tz)
			if err != nil || name == "" {
				return nil, coerceError(key, "model: date map timezone must be a location name")
			}
			parseLoc, err = time.LoadLocation(name)
			if err != nil {
				return nil, coerceWrapError(err, key, "model: load date timezone")
			}
		}
		parsed, err := dateparse.ParseIn(raw, parseLoc)
		if err != nil {
			return nil, coerceWrapError(err, key, "model: parse date map")
		}
		return parsed.In(loc).Format(layout), nil
	}
	return nil, coerceError(key, fmt.Sprintf("model: unsupported date value %T", value))
}
