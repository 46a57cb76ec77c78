package prayer

import (
	"fmt"
	"strings"
)

// Name is one of the six daily slots. The declaration order is the display
// order and the order NextPrayer searches in.
type Name int

const (
	Fajr Name = iota
	Sunrise
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Count is the number of slots in a day's table.
const Count = 6

var names = [Count]string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

// Names returns the six slots in fixed order.
func Names() []Name {
	return []Name{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}
}

func (n Name) Valid() bool {
	return n >= Fajr && n <= Isha
}

func (n Name) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return names[n]
}

// ParseName matches a label case-insensitively, e.g. "FAJR" or "maghrib".
func ParseName(s string) (Name, error) {
	label := strings.TrimSpace(s)
	for i, nm := range names {
		if strings.EqualFold(nm, label) {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPrayer, s)
}

func (n Name) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPrayer, int(n))
	}
	return []byte(n.String()), nil
}

func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
