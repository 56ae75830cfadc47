package nametemplate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTemplate is returned when a range has non-numeric bounds, is not closed
// or the template denotes more than MaxNames names.
var ErrMalformedTemplate = errors.New("malformed name template")

// MaxNames bounds the number of names a single template may expand to.
const MaxNames = 4096

// segment is either literal text or an inclusive numeric range.
type segment struct {
	literal string
	isRange bool
	lo, hi  int
}

// HasRanges reports whether s contains at least one well-formed or malformed range,
// i.e. whether Expand can return anything other than s itself.
func HasRanges(s string) bool {
	segs, err := parse(s)
	if err != nil {
		return true
	}
	for _, seg := range segs {
		if seg.isRange {
			return true
		}
	}
	return false
}

// Expand returns every name denoted by template, in product order with the leftmost
// range varying slowest. A template without ranges expands to itself.
func Expand(template string) ([]string, error) {
	segs, err := parse(template)
	if err != nil {
		return nil, err
	}

	total := 1
	for _, seg := range segs {
		if seg.isRange && seg.lo > seg.hi {
			return []string{}, nil
		}
	}
	for _, seg := range segs {
		if !seg.isRange {
			continue
		}
		// hi >= lo >= 0, so the width cannot overflow
		width := seg.hi - seg.lo
		if width >= MaxNames || total > MaxNames/(width+1) {
			return nil, fmt.Errorf("%w: %q expands to more than %d names", ErrMalformedTemplate, template, MaxNames)
		}
		total *= width + 1
	}

	names := []string{""}
	for _, seg := range segs {
		if !seg.isRange {
			for i := range names {
				names[i] += seg.literal
			}
			continue
		}

		next := make([]string, 0, len(names)*(seg.hi-seg.lo+1))
		for _, prefix := range names {
			for v := seg.lo; v <= seg.hi; v++ {
				next = append(next, prefix+strconv.Itoa(v))
			}
		}
		names = next
	}

	return names, nil
}

// parse splits a template into literal and range segments.
func parse(template string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder

	rest := template
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			lit.WriteString(rest)
			break
		}

		lit.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			if strings.Contains(rest, "-") {
				return nil, fmt.Errorf("%w: unclosed range in %q", ErrMalformedTemplate, template)
			}
			lit.WriteString(rest)
			break
		}

		body := rest[1:end]
		if !strings.Contains(body, "-") {
			// Not a range, keep the brackets verbatim.
			lit.WriteString(rest[:end+1])
			rest = rest[end+1:]
			continue
		}

		lo, hi, err := parseBounds(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %q in %q: %v", ErrMalformedTemplate, "["+body+"]", template, err)
		}

		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
		segs = append(segs, segment{isRange: true, lo: lo, hi: hi})
		rest = rest[end+1:]
	}

	if lit.Len() > 0 {
		segs = append(segs, segment{literal: lit.String()})
	}

	return segs, nil
}

// parseBounds parses "a-b" where both bounds are unsigned decimal integers.
func parseBounds(body string) (int, int, error) {
	left, right, _ := strings.Cut(body, "-")
	lo, err := parseBound(left)
	if err != nil {
		return 0, 0, err
	}
	hi, err := parseBound(right)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty bound")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric bound %q", s)
		}
	}
	return strconv.Atoi(s)
}
