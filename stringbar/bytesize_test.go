package stringbar

import "testing"

func TestFitBytes(t *testing.T) {
	tests := []struct {
		name    string
		value   uint64
		system  UnitSystem
		divisor float64
		unit    string
	}{
		{"below a kilobyte still fits KiB", 1, Binary, 1024, "KiB"},
		{"one mebibyte", 1 << 20, Binary, 1 << 20, "MiB"},
		{"decimal exabyte", 1_000_000_000_000_000_001, Decimal, 1e18, "EB"},
		{"zero", 0, Binary, 1024, "KiB"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := fitBytes(test.value, test.system)
			if f.divisor != test.divisor {
				t.Errorf("divisor mismatch, got %g, expected %g", f.divisor, test.divisor)
			}
			if f.unit != test.unit {
				t.Errorf("unit mismatch, got %q, expected %q", f.unit, test.unit)
			}
		})
	}
}

func TestFormatByteUsage(t *testing.T) {
	tests := []struct {
		name        string
		used, total uint64
		system      UnitSystem
		expect      string
	}{
		{"binary", 1 << 30, 1 << 31, Binary, "1.0/2.0GiB"},
		{"decimal", 1 << 30, 1 << 31, Decimal, "1.1/2.1GB"},
		{"half a kibibyte", 512, 1536, Binary, "0.5/1.5KiB"},
		{"no swap", 0, 0, Binary, "0.0/0.0KiB"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := FormatByteUsage(test.used, test.total, test.system)
			if got != test.expect {
				t.Errorf("got %q, expected %q", got, test.expect)
			}
		})
	}
}
