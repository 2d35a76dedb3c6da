package abi

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

type flagSet interface {
	~uint8 | ~uint32
}

type flagName[F flagSet] struct {
	flag F
	name string
}

// formatFlags returns the names of the bits set in f joined by "|", or zero if
// no bits are set.
func formatFlags[F flagSet](f F, names []flagName[F], zero string) string {
	if f == 0 {
		return zero
	}
	var parts []string
	for _, n := range names {
		if n.flag != 0 && f&n.flag == n.flag {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint64(f)))
	}
	return strings.Join(parts, "|")
}

// parseFlags is the inverse of formatFlags. Each element of the "|" separated
// list is either a flag name or a numeric literal. Bits outside of known are
// dropped.
func parseFlags[F flagSet](s string, names []flagName[F], known F, bitSize int) (F, error) {
	var f F
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := slices.IndexFunc(names, func(n flagName[F]) bool {
			return strings.EqualFold(n.name, part)
		})
		if i >= 0 {
			f |= names[i].flag
			continue
		}
		v, err := strconv.ParseUint(part, 0, bitSize)
		if err != nil {
			return 0, fmt.Errorf("invalid flag: %q", part)
		}
		f |= F(v)
	}
	return f & known, nil
}
