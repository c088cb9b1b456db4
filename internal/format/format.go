package format

import (
	"fmt"
	"strings"
	"time"
)

// Price formats a fare amount with its currency symbol.
// Example: Price(1234.5, "SBD") => "SBD $1,234.50"
func Price(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	head := thousandSep(int64(amount))
	cents := int64(amount*100+0.5) % 100
	if cents < 0 {
		cents = -cents
	}
	tail := fmt.Sprintf("%02d", cents)
	switch currency {
	case "SBD":
		return "SBD $" + head + "." + tail
	case "AUD":
		return "AUD $" + head + "." + tail
	case "USD":
		return "US $" + head + "." + tail
	case "":
		return head + "." + tail
	default:
		return currency + " " + head + "." + tail
	}
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}

// Date formats a CMS date string (RFC3339 or plain date) for display.
// Unparseable input is returned unchanged.
func Date(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2 Jan 2006")
		}
	}
	return v
}
