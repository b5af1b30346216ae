package format

import (
	"encoding/base64"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/paramprep/internal/stringutil"
	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/rules"
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// UUID accepts RFC 4122 UUIDs in any common notation and prepares the
// canonical lowercase hyphenated form.
func UUID() *Format {
	return &Format{
		name: "uuid",
		kind: param.KindString,
		rules: []rules.Rule{stringCheck("format: uuid", "%q is not a valid UUID", func(s string) bool {
			return uuid.Validate(s) == nil
		})},
		steps: []param.Step{stringStep("Canonicalize UUID", func(s string) (any, error) {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, oaserrors.NewInvalidInput("%q is not a valid UUID", s)
			}
			return id.String(), nil
		})},
		doc: "A UUID, e.g. 123e4567-e89b-12d3-a456-426614174000.",
	}
}

// Date accepts full-date strings (YYYY-MM-DD) and prepares a time.Time.
func Date() *Format {
	return &Format{
		name: "date",
		kind: param.KindString,
		rules: []rules.Rule{stringCheck("format: date", "%q is not a valid date (expected YYYY-MM-DD)", func(s string) bool {
			_, err := time.Parse(time.DateOnly, s)
			return err == nil
		})},
		steps: []param.Step{stringStep("Parse date", func(s string) (any, error) {
			t, err := time.Parse(time.DateOnly, s)
			if err != nil {
				return nil, oaserrors.NewInvalidInput("%q is not a valid date (expected YYYY-MM-DD)", s)
			}
			return t, nil
		})},
		doc: "A full-date (YYYY-MM-DD).",
	}
}

// DateTime accepts RFC 3339 date-time strings and prepares a time.Time.
func DateTime() *Format {
	return &Format{
		name: "date-time",
		kind: param.KindString,
		rules: []rules.Rule{stringCheck("format: date-time", "%q is not a valid date-time (expected RFC 3339)", func(s string) bool {
			_, err := time.Parse(time.RFC3339Nano, s)
			return err == nil
		})},
		steps: []param.Step{stringStep("Parse date-time", func(s string) (any, error) {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, oaserrors.NewInvalidInput("%q is not a valid date-time (expected RFC 3339)", s)
			}
			return t, nil
		})},
		doc: "An RFC 3339 date-time, e.g. 2017-07-21T17:32:28Z.",
	}
}

// Byte accepts standard base64 and prepares the decoded content as a string.
func Byte() *Format {
	return &Format{
		name: "byte",
		kind: param.KindString,
		steps: []param.Step{stringStep("Decode base64", func(s string) (any, error) {
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, &oaserrors.InvalidInputError{Message: "Invalid data", Detail: "value is not valid base64", Cause: err}
			}
			return string(b), nil
		})},
		doc: "Base64-encoded data.",
	}
}

var (
	yesTokens = []string{"yes", "y", "true", "on", "1"}
	noTokens  = []string{"no", "n", "false", "off", "0"}
)

func yesNo(s string) (bool, bool) {
	s = strings.ToLower(s)
	for _, t := range yesTokens {
		if s == t {
			return true, true
		}
	}
	for _, t := range noTokens {
		if s == t {
			return false, true
		}
	}
	return false, false
}

// YesNo accepts yes/no style tokens and prepares a bool.
func YesNo() *Format {
	return &Format{
		name: "yes-no",
		kind: param.KindString,
		rules: []rules.Rule{stringCheck("format: yes-no", "%q is not a yes/no value", func(s string) bool {
			_, ok := yesNo(s)
			return ok
		})},
		steps: []param.Step{stringStep("Convert yes/no to boolean", func(s string) (any, error) {
			b, ok := yesNo(s)
			if !ok {
				return nil, oaserrors.NewInvalidInput("%q is not a yes/no value", s)
			}
			return b, nil
		})},
		doc: "One of: " + strings.Join(yesTokens, ", ") + " (true) or " + strings.Join(noTokens, ", ") + " (false).",
	}
}

// Email accepts email addresses.
func Email() *Format {
	return &Format{
		name:  "email",
		kind:  param.KindString,
		rules: []rules.Rule{stringCheck("format: email", "%q is not a valid email address", stringutil.IsValidEmail)},
		doc:   "An email address.",
	}
}

// URI accepts absolute URIs.
func URI() *Format {
	return &Format{
		name: "uri",
		kind: param.KindString,
		rules: []rules.Rule{stringCheck("format: uri", "%q is not a valid URI", func(s string) bool {
			u, err := url.Parse(s)
			return err == nil && u.Scheme != ""
		})},
		doc: "An absolute URI.",
	}
}

// IPv4 accepts dotted-quad IPv4 addresses.
func IPv4() *Format {
	return ipFormat("ipv4", "IPv4", netip.Addr.Is4)
}

// IPv6 accepts IPv6 addresses.
func IPv6() *Format {
	return ipFormat("ipv6", "IPv6", func(a netip.Addr) bool { return a.Is6() })
}

func ipFormat(name, label string, family func(netip.Addr) bool) *Format {
	parse := func(s string) (netip.Addr, bool) {
		a, err := netip.ParseAddr(s)
		if err != nil || !family(a) {
			return netip.Addr{}, false
		}
		return a, true
	}
	message := "%q is not a valid " + label + " address"
	return &Format{
		name: name,
		kind: param.KindString,
		rules: []rules.Rule{stringCheck("format: "+name, message, func(s string) bool {
			_, ok := parse(s)
			return ok
		})},
		steps: []param.Step{stringStep("Canonicalize "+label+" address", func(s string) (any, error) {
			a, ok := parse(s)
			if !ok {
				return nil, oaserrors.NewInvalidInput(message, s)
			}
			return a.String(), nil
		})},
		doc: "An " + label + " address.",
	}
}

// Hostname accepts RFC 1123 host names and prepares them lowercased.
func Hostname() *Format {
	return &Format{
		name:  "hostname",
		kind:  param.KindString,
		rules: []rules.Rule{stringCheck("format: hostname", "%q is not a valid hostname", stringutil.IsValidHostname)},
		steps: []param.Step{stringStep("Lowercase hostname", func(s string) (any, error) {
			return strings.ToLower(s), nil
		})},
		doc: "An RFC 1123 host name.",
	}
}

// Password marks a sensitive string. It adds no rules.
func Password() *Format {
	return &Format{
		name: "password",
		kind: param.KindString,
		doc:  "A sensitive value; it is never echoed in documentation examples.",
	}
}
