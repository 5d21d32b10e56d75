package helpers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"howett.net/viewbind"
	"howett.net/viewbind/lib/stache"
	"howett.net/viewbind/views"
)

// Humanize formats a value for people. The format is the optional second
// parameter or the `format` hash option: bytes, comma, ordinal or time.
// Without one, times are relative and numbers get thousands separators.
//
//	{{humanize file.size "bytes"}} {{humanize post.created}}
func Humanize(params []stache.Param, opts *views.HelperOptions) error {
	if len(params) < 1 || len(params) > 2 {
		return viewbind.Configurationf(opts.Name, "expected a value and an optional format, got %d arguments", len(params))
	}
	v := opts.Value(params[0])

	format := ""
	if len(params) == 2 {
		format = views.Stringify(opts.Value(params[1]))
	} else if p, ok := opts.Hash["format"]; ok {
		format = p.String()
	}

	s, err := humanizeValue(v, format)
	if err != nil {
		return viewbind.Configurationf(opts.Name, "%v", err)
	}
	opts.WriteText(s)
	return nil
}

func humanizeValue(v interface{}, format string) (string, error) {
	if v == nil {
		return "", nil
	}
	if format == "" {
		switch v.(type) {
		case time.Time, *time.Time:
			format = "time"
		case string:
			return v.(string), nil
		default:
			format = "comma"
		}
	}

	switch format {
	case "time":
		switch t := v.(type) {
		case time.Time:
			return humanize.Time(t), nil
		case *time.Time:
			return humanize.Time(*t), nil
		}
		return "", fmt.Errorf("%T is not a time", v)
	case "bytes":
		n, err := toInt64(v)
		if err != nil {
			return "", err
		}
		if n < 0 {
			return "-" + humanize.Bytes(uint64(-n)), nil
		}
		return humanize.Bytes(uint64(n)), nil
	case "comma":
		if f, ok := v.(float64); ok && f != float64(int64(f)) {
			return humanize.Commaf(f), nil
		}
		n, err := toInt64(v)
		if err != nil {
			return "", err
		}
		return humanize.Comma(n), nil
	case "ordinal":
		n, err := toInt64(v)
		if err != nil {
			return "", err
		}
		return humanize.Ordinal(int(n)), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("%T is not a number", v)
}
