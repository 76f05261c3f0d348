package stringbar

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Separator != " | " {
		t.Errorf("unexpected separator %q", cfg.Separator)
	}
	if cfg.UpdateIntervalMs != 1000 {
		t.Errorf("unexpected interval %d", cfg.UpdateIntervalMs)
	}
	if cfg.DecimalDataUnits {
		t.Error("default config should use binary units")
	}

	kinds := make([]string, len(cfg.Sections))
	for i, section := range cfg.Sections {
		kinds[i] = section.Module.Kind()
	}

	expect := []string{"memory_usage", "disk_usage", "disk_usage_total", "timestamp"}
	if strings.Join(kinds, ",") != strings.Join(expect, ",") {
		t.Errorf("unexpected section kinds %v, expected %v", kinds, expect)
	}

	if disk := cfg.Sections[1].Module.(*DiskUsage); disk.Name != "/dev/sda" {
		t.Errorf("unexpected disk name %q", disk.Name)
	}
	if before := cfg.Sections[0].Decoration.Before; before != "dram " {
		t.Errorf("unexpected decoration %q", before)
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("si_units override", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
separator: " "
update_interval_ms: 250
decimal_data_units: false
sections:
  - module: memory_usage
    si_units: true
    after: " ram"
`))
		if err != nil {
			t.Fatal("failed to parse config:", err)
		}

		mem := cfg.Sections[0].Module.(*MemoryUsage)
		if mem.SIUnits == nil || !*mem.SIUnits {
			t.Errorf("si_units override not decoded: %#v", mem.SIUnits)
		}
		if cfg.unitSystem(mem.SIUnits) != Decimal {
			t.Error("si_units: true should select decimal units")
		}
		if cfg.unitSystem(nil) != Binary {
			t.Error("sections without override should stay binary")
		}
		if after := cfg.Sections[0].Decoration.After; after != " ram" {
			t.Errorf("unexpected decoration %q", after)
		}
	})

	t.Run("empty bar is valid", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("separator: x\nupdate_interval_ms: 1\n"))
		if err != nil {
			t.Fatal("failed to parse config:", err)
		}
		if len(cfg.Sections) != 0 {
			t.Errorf("unexpected sections %#v", cfg.Sections)
		}
	})

	invalids := []struct {
		name string
		body string
	}{
		{
			"unknown module",
			"separator: x\nupdate_interval_ms: 1\nsections:\n  - module: uptime\n",
		},
		{
			"missing module",
			"separator: x\nupdate_interval_ms: 1\nsections:\n  - before: 'oops '\n",
		},
		{
			"field for the wrong kind",
			"separator: x\nupdate_interval_ms: 1\nsections:\n  - module: cpu_usage\n    template: \"%H\"\n",
		},
		{
			"non-positive interval",
			"separator: x\nupdate_interval_ms: 0\n",
		},
		{
			"missing timestamp template",
			"separator: x\nupdate_interval_ms: 1\nsections:\n  - module: timestamp\n",
		},
		{
			"invalid timestamp template",
			"separator: x\nupdate_interval_ms: 1\nsections:\n  - module: timestamp\n    template: \"%Q\"\n",
		},
		{
			"missing disk name",
			"separator: x\nupdate_interval_ms: 1\nsections:\n  - module: disk_usage\n",
		},
		{
			"malformed yaml",
			"separator: [\n",
		},
	}

	for _, test := range invalids {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(test.body)); err == nil {
				t.Error("config unexpectedly accepted")
			}
		})
	}
}
