package stringbar

import (
	"os"
	"path/filepath"

	"github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigName is the name of the configuration file inside the stringbar
// configuration directory.
const ConfigName = "config.yaml"

// defaultConfig is the commented configuration written verbatim when no
// configuration file exists. DefaultConfig parses it, so the generated file
// and the in-memory default can never drift apart.
const defaultConfig = `# stringbar configuration.

# separator is inserted verbatim between sections, not at the ends.
separator: " | "

# update_interval_ms is the delay between refreshes, in milliseconds.
update_interval_ms: 1000

# decimal_data_units chooses decimal (GB) over binary (GiB) units for
# modules that print byte sizes. memory_usage and swap_usage may override
# it per section with si_units.
decimal_data_units: false

# sections are rendered in order. Each one names a module and optionally a
# before/after decoration:
#
#   cpu_usage                              global CPU utilization
#   memory_usage     [si_units]            used/total RAM
#   swap_usage       [si_units]            used/total swap
#   timestamp        template              local time, strftime template
#   process_count                          number of running processes
#   disk_usage       name                  used/total of one device
#   disk_usage_total [include_removables]  used/total over all devices
sections:
  - module: memory_usage
    before: "dram "
  - module: disk_usage
    name: /dev/sda
    before: "sda "
  - module: disk_usage_total
    include_removables: false
    before: "total "
  - module: timestamp
    template: "%d/%m/%Y %H:%M"
`

// Config is the top-level stringbar configuration. It is immutable once
// loaded; a reload produces a whole new Config.
type Config struct {
	Separator        string    `yaml:"separator"`
	UpdateIntervalMs int       `yaml:"update_interval_ms"`
	DecimalDataUnits bool      `yaml:"decimal_data_units"`
	Sections         []Section `yaml:"sections"`
}

// Section is one rendered part of the status line: a module surrounded by
// its decoration.
type Section struct {
	Module     ModuleSpec
	Decoration Decoration
}

// Decoration is literal text printed before and after a module's output.
type Decoration struct {
	Before string `yaml:"before"`
	After  string `yaml:"after"`
}

// ModuleSpec is the tagged per-module configuration payload. Concrete types
// are CPUUsage, MemoryUsage, SwapUsage, Timestamp, ProcessCount, DiskUsage
// and DiskUsageTotal.
type ModuleSpec interface {
	// Kind returns the module kind as written in the configuration file.
	Kind() string
	// validate checks the variant's own fields.
	validate() error
}

// CPUUsage renders the global CPU utilization since the previous tick.
type CPUUsage struct{}

func (*CPUUsage) Kind() string    { return "cpu_usage" }
func (*CPUUsage) validate() error { return nil }

// MemoryUsage renders used/total RAM. SIUnits, if set, overrides the global
// decimal_data_units switch for this section.
type MemoryUsage struct {
	SIUnits *bool `yaml:"si_units"`
}

func (*MemoryUsage) Kind() string    { return "memory_usage" }
func (*MemoryUsage) validate() error { return nil }

// SwapUsage renders used/total swap. SIUnits works like MemoryUsage's.
type SwapUsage struct {
	SIUnits *bool `yaml:"si_units"`
}

func (*SwapUsage) Kind() string    { return "swap_usage" }
func (*SwapUsage) validate() error { return nil }

// Timestamp renders the current local time using a strftime template.
type Timestamp struct {
	Template string `yaml:"template"`
}

func (*Timestamp) Kind() string { return "timestamp" }

func (t *Timestamp) validate() error {
	if t.Template == "" {
		return errors.New("missing template")
	}
	if _, err := strftime.New(t.Template); err != nil {
		return errors.Wrapf(err, "invalid template %q", t.Template)
	}
	return nil
}

// ProcessCount renders the number of currently running processes.
type ProcessCount struct{}

func (*ProcessCount) Kind() string    { return "process_count" }
func (*ProcessCount) validate() error { return nil }

// DiskUsage renders used/total space of the mounted device with the given
// name, e.g. /dev/sda.
type DiskUsage struct {
	Name string `yaml:"name"`
}

func (*DiskUsage) Kind() string { return "disk_usage" }

func (d *DiskUsage) validate() error {
	if d.Name == "" {
		return errors.New("missing device name")
	}
	return nil
}

// DiskUsageTotal renders used/total space summed over all mounted physical
// devices, skipping removable media unless IncludeRemovables is set.
type DiskUsageTotal struct {
	IncludeRemovables bool `yaml:"include_removables"`
}

func (*DiskUsageTotal) Kind() string    { return "disk_usage_total" }
func (*DiskUsageTotal) validate() error { return nil }

// sectionKeys are the keys every section may carry regardless of module
// kind.
var sectionKeys = map[string]bool{
	"module": true,
	"before": true,
	"after":  true,
}

// moduleKeys lists the extra keys each module kind accepts.
var moduleKeys = map[string][]string{
	"cpu_usage":        {},
	"memory_usage":     {"si_units"},
	"swap_usage":       {"si_units"},
	"timestamp":        {"template"},
	"process_count":    {},
	"disk_usage":       {"name"},
	"disk_usage_total": {"include_removables"},
}

// UnmarshalYAML decodes the flat section mapping into the tagged ModuleSpec
// variant named by the module key. Keys that don't belong to the named kind
// are rejected so that a typo'd section fails the whole reload instead of
// being silently ignored.
func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Module string `yaml:"module"`
		Before string `yaml:"before"`
		After  string `yaml:"after"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	if head.Module == "" {
		return errors.New("section is missing a module")
	}

	newSpec, ok := moduleSpecs[head.Module]
	if !ok {
		return errors.Errorf("unknown module %q", head.Module)
	}

	if err := checkSectionKeys(node, head.Module); err != nil {
		return err
	}

	spec := newSpec()
	if err := node.Decode(spec); err != nil {
		return errors.Wrapf(err, "invalid %s section", head.Module)
	}

	s.Module = spec
	s.Decoration = Decoration{Before: head.Before, After: head.After}
	return nil
}

func checkSectionKeys(node *yaml.Node, kind string) error {
	allowed := make(map[string]bool, len(sectionKeys)+2)
	for k := range sectionKeys {
		allowed[k] = true
	}
	for _, k := range moduleKeys[kind] {
		allowed[k] = true
	}

	// Mapping nodes interleave key and value nodes.
	for i := 0; i+1 < len(node.Content); i += 2 {
		if key := node.Content[i].Value; !allowed[key] {
			return errors.Errorf("key %q is not valid for module %s", key, kind)
		}
	}
	return nil
}

// ParseConfig parses and validates a configuration document.
func ParseConfig(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.UpdateIntervalMs <= 0 {
		return errors.Errorf("update_interval_ms must be positive, got %d", cfg.UpdateIntervalMs)
	}

	for i, section := range cfg.Sections {
		if err := section.Module.validate(); err != nil {
			return errors.Wrapf(err, "section %d (%s)", i, section.Module.Kind())
		}
	}

	return nil
}

// unitSystem resolves the unit system for a byte-printing section, honoring
// the per-section si_units override when present.
func (cfg *Config) unitSystem(override *bool) UnitSystem {
	decimal := cfg.DecimalDataUnits
	if override != nil {
		decimal = *override
	}

	if decimal {
		return Decimal
	}
	return Binary
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	return ParseConfig(b)
}

// WriteDefaultConfig writes the commented default configuration to path,
// creating parent directories as needed. It refuses to overwrite an
// existing file.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	if _, err := f.WriteString(defaultConfig); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write config file")
	}

	return errors.Wrap(f.Close(), "failed to finish config file")
}

// DefaultConfig returns the built-in default configuration, the same one
// WriteDefaultConfig generates.
func DefaultConfig() *Config {
	cfg, err := ParseConfig([]byte(defaultConfig))
	if err != nil {
		panic("stringbar: built-in default config is broken: " + err.Error())
	}
	return cfg
}
