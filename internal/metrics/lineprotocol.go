package metrics

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"codeberg.org/mutker/fstelegraf/internal/errors"
)

var (
	measurementEscaper = strings.NewReplacer(",", `\,`, " ", `\ `)
	keyEscaper         = strings.NewReplacer(",", `\,`, "=", `\=`, " ", `\ `)
	stringEscaper      = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

// Line renders the metric as
//
//	<measurement>[,<tag>=<value>...] <field>=<value>[,<field>=<value>...]
func (m Metric) Line() (string, error) {
	errFactory := errors.New()

	if m.Measurement == "" {
		return "", errFactory.New(ErrInvalidMeasurement)
	}
	if len(m.Fields) == 0 {
		return "", errFactory.WithData(ErrEmptyFields, m.Measurement)
	}

	var b strings.Builder
	b.WriteString(measurementEscaper.Replace(m.Measurement))

	for _, tag := range m.Tags {
		b.WriteByte(',')
		b.WriteString(keyEscaper.Replace(tag.Key))
		b.WriteByte('=')
		b.WriteString(keyEscaper.Replace(tag.Value))
	}

	b.WriteByte(' ')
	for i, field := range m.Fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(keyEscaper.Replace(field.Key))
		b.WriteByte('=')
		b.WriteString(formatValue(field.Value))
	}

	return b.String(), nil
}

// String implements fmt.Stringer; invalid metrics render as an empty string.
func (m Metric) String() string {
	line, err := m.Line()
	if err != nil {
		return ""
	}

	return line
}

// Encode writes one line per metric, newline-separated with no trailing
// newline. Nothing is written if any metric is invalid.
func Encode(w io.Writer, ms []Metric) error {
	if len(ms) == 0 {
		return nil
	}

	lines := make([]string, 0, len(ms))
	for _, m := range ms {
		line, err := m.Line()
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return errors.New().Wrap(ErrEncode, err)
	}

	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return `"` + stringEscaper.Replace(val) + `"`
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
