package stringbar

import "fmt"

// UnitSystem is the base that byte magnitudes are computed in.
type UnitSystem uint64

const (
	// Binary uses powers of 1024 and "i" units (KiB, MiB, GiB, ...).
	Binary UnitSystem = 1024
	// Decimal uses powers of 1000 and SI units (KB, MB, GB, ...).
	Decimal UnitSystem = 1000
)

var magnitudePrefixes = [...]string{"K", "M", "G", "T", "P", "E"}

// byteFormatter formats byte counts against one fixed divisor and unit, so
// several values can be printed on the same scale.
type byteFormatter struct {
	divisor float64
	unit    string
}

// fitBytes picks the largest magnitude that the given value still reaches,
// never going below kilobytes. Fitting the total and reusing the formatter
// for the used value keeps both on the same unit.
func fitBytes(value uint64, system UnitSystem) byteFormatter {
	infix := ""
	if system == Binary {
		infix = "i"
	}

	divisor := float64(system)
	magnitude := 0

	for magnitude < len(magnitudePrefixes)-1 {
		next := divisor * float64(system)
		if float64(value) < next {
			break
		}
		divisor = next
		magnitude++
	}

	return byteFormatter{
		divisor: divisor,
		unit:    magnitudePrefixes[magnitude] + infix + "B",
	}
}

func (f byteFormatter) format(value uint64) string {
	return fmt.Sprintf("%.1f", float64(value)/f.divisor)
}

// FormatByteUsage renders "<used>/<total><unit>" with a single unit fitted
// to the total, e.g. "1.0/2.0GiB" or "1.1/2.1GB".
func FormatByteUsage(used, total uint64, system UnitSystem) string {
	f := fitBytes(total, system)
	return f.format(used) + "/" + f.format(total) + f.unit
}
