// Package sizes форматирует размеры в байтах и разбирает спецификации размера части ("500KB").
package sizes

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
)

var (
	ErrEmptySpec   = errors.New("size spec has no digits")
	ErrInvalidSpec = errors.New("invalid size spec")
)

// units содержит допустимые единицы спецификации; двоичные множители.
var units = map[string]datasize.ByteSize{
	"B":  datasize.B,
	"KB": datasize.KB,
	"MB": datasize.MB,
	"GB": datasize.GB,
}

var formatUnits = []struct {
	name string
	size datasize.ByteSize
}{
	{"B", datasize.B},
	{"KB", datasize.KB},
	{"MB", datasize.MB},
	{"GB", datasize.GB},
	{"TB", datasize.TB},
}

var specRe = regexp.MustCompile(`^(\d+)([A-Z]*)$`)

// Spec — разобранная спецификация размера.
type Spec struct {
	Magnitude int64
	Unit      string
	Bytes     int64
}

// Parse разбирает строку вида "10MB", "500 kb", "4096". Без единицы считаются байты.
func Parse(s string) (Spec, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if !strings.ContainsAny(norm, "0123456789") {
		return Spec{}, fmt.Errorf("%w: %q", ErrEmptySpec, s)
	}

	m := specRe.FindStringSubmatch(norm)
	if m == nil {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
	}

	unit := m[2]
	if unit == "" {
		unit = "B"
	}
	mult, ok := units[unit]
	if !ok {
		return Spec{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidSpec, m[2])
	}

	// Умножение и проверку переполнения uint64 делает datasize; части адресуются int64.
	n, err := datasize.ParseString(m[1] + unit)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalidSpec, s, err)
	}
	if n.Bytes() > math.MaxInt64 {
		return Spec{}, fmt.Errorf("%w: %q overflows", ErrInvalidSpec, s)
	}

	return Spec{
		Magnitude: int64(n / mult),
		Unit:      unit,
		Bytes:     int64(n.Bytes()),
	}, nil
}

// String возвращает спецификацию в каноническом виде.
func (s Spec) String() string {
	return strconv.FormatInt(s.Magnitude, 10) + s.Unit
}

// Format переводит число байт в человекочитаемую строку: "2.44 KB", "500.0 KB", "0 B".
// Значение округляется до двух знаков; целое значение печатается с ".0".
func Format(n int64) string {
	if n == 0 {
		return "0 B"
	}
	if n < 0 {
		return "-" + Format(-n)
	}

	i := 0
	for i < len(formatUnits)-1 && uint64(n) >= uint64(formatUnits[i+1].size) {
		i++
	}

	v := math.Round(float64(n)/float64(formatUnits[i].size)*100) / 100
	str := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(str, ".") {
		str += ".0"
	}

	return str + " " + formatUnits[i].name
}

// Describe возвращает строку для дескриптора: "2500 байт (2.44 KB)".
func Describe(n int64) string {
	return fmt.Sprintf("%d байт (%s)", n, Format(n))
}
