package human

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Bytes represents a number of bytes.
//
// Values are parsed from forms like "42", "42 KB", "8Ki" or "1.5MiB", using
// factors of 1000 for units like KB or MB and factors of 1024 for units like
// Ki or MiB. Formatting always uses factors of 1024.
//
// Bytes encode as plain integers in JSON and YAML.
type Bytes int64

const (
	B Bytes = 1

	KB Bytes = 1000 * B
	MB Bytes = 1000 * KB
	GB Bytes = 1000 * MB
	TB Bytes = 1000 * GB

	KiB Bytes = 1024 * B
	MiB Bytes = 1024 * KiB
	GiB Bytes = 1024 * MiB
	TiB Bytes = 1024 * GiB
)

type byteUnit struct {
	scale Bytes
	names []string
}

var byteUnits = [...]byteUnit{
	{B, []string{"", "B"}},
	{KB, []string{"K", "KB"}},
	{MB, []string{"M", "MB"}},
	{GB, []string{"G", "GB"}},
	{TB, []string{"T", "TB"}},
	{KiB, []string{"Ki", "KiB"}},
	{MiB, []string{"Mi", "MiB"}},
	{GiB, []string{"Gi", "GiB"}},
	{TiB, []string{"Ti", "TiB"}},
}

var formatUnits = [...]byteUnit{
	{TiB, []string{"TiB"}},
	{GiB, []string{"GiB"}},
	{MiB, []string{"MiB"}},
	{KiB, []string{"KiB"}},
}

// ParseBytes parses a number of bytes from s.
func ParseBytes(s string) (Bytes, error) {
	i := strings.IndexFunc(s, func(r rune) bool {
		return r != '.' && r != '-' && r != '+' && !unicode.IsDigit(r)
	})
	if i < 0 {
		i = len(s)
	}
	value, unit := s[:i], strings.TrimSpace(s[i:])

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed bytes representation: %q: %w", s, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("invalid negative byte count: %q", s)
	}
	for _, u := range byteUnits {
		for _, name := range u.names {
			if strings.EqualFold(name, unit) {
				return Bytes(math.Floor(f * float64(u.scale))), nil
			}
		}
	}
	return 0, fmt.Errorf("malformed bytes representation: %q", s)
}

func (b Bytes) String() string {
	for _, u := range formatUnits {
		if b >= u.scale || -b >= u.scale {
			return ftoa(float64(b)/float64(u.scale)) + " " + u.names[0]
		}
	}
	return strconv.FormatInt(int64(b), 10)
}

func (b *Bytes) Set(s string) error {
	p, err := ParseBytes(s)
	if err != nil {
		return err
	}
	*b = p
	return nil
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(b))
}

func (b *Bytes) UnmarshalJSON(j []byte) error {
	var s string
	if json.Unmarshal(j, &s) == nil {
		return b.Set(s)
	}
	return json.Unmarshal(j, (*int64)(b))
}

func (b Bytes) MarshalYAML() (any, error) {
	return int64(b), nil
}

func (b *Bytes) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return b.Set(s)
}

func ftoa(value float64) string {
	var format string
	switch {
	case math.Abs(value) >= 100:
		format = "%.0f"
	case math.Abs(value) >= 10:
		format = "%.1f"
	default:
		format = "%.2f"
	}
	s := fmt.Sprintf(format, value)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

var (
	_ fmt.Stringer     = Bytes(0)
	_ json.Marshaler   = Bytes(0)
	_ json.Unmarshaler = (*Bytes)(nil)
	_ flag.Value       = (*Bytes)(nil)
)
