package stringbar

import "github.com/pkg/errors"

// moduleSpecs maps a module kind, as written in the configuration file, to
// its spec constructor. Section decoding uses it to pick the variant to
// unmarshal into.
var moduleSpecs = map[string]func() ModuleSpec{
	"cpu_usage":        func() ModuleSpec { return &CPUUsage{} },
	"memory_usage":     func() ModuleSpec { return &MemoryUsage{} },
	"swap_usage":       func() ModuleSpec { return &SwapUsage{} },
	"timestamp":        func() ModuleSpec { return &Timestamp{} },
	"process_count":    func() ModuleSpec { return &ProcessCount{} },
	"disk_usage":       func() ModuleSpec { return &DiskUsage{} },
	"disk_usage_total": func() ModuleSpec { return &DiskUsageTotal{} },
}

// NewProvider creates the provider backing the given module spec. The
// configuration supplies cross-cutting settings such as the unit system.
func NewProvider(spec ModuleSpec, cfg *Config) (Provider, error) {
	switch spec := spec.(type) {
	case *CPUUsage:
		return newCPUProvider(), nil
	case *MemoryUsage:
		return newMemoryProvider(cfg.unitSystem(spec.SIUnits)), nil
	case *SwapUsage:
		return newSwapProvider(cfg.unitSystem(spec.SIUnits)), nil
	case *Timestamp:
		return newTimestampProvider(spec.Template)
	case *ProcessCount:
		return newProcessCountProvider(), nil
	case *DiskUsage:
		return newDiskProvider(spec.Name, cfg.unitSystem(nil)), nil
	case *DiskUsageTotal:
		return newDiskTotalProvider(spec.IncludeRemovables, cfg.unitSystem(nil)), nil
	default:
		return nil, errors.Errorf("unknown module spec %T", spec)
	}
}
