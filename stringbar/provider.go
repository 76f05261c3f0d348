package stringbar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Provider computes the current value of a single status module. Providers
// are rebuilt on every configuration (re)load, so any internal sampling
// state starts fresh with the new configuration.
type Provider interface {
	Sample() (string, error)
}

// cpuProvider renders the global CPU utilization between consecutive
// samples. The first sample after construction has no baseline and reports
// zero.
type cpuProvider struct {
	times func(percpu bool) ([]cpu.TimesStat, error)
	prev  *cpu.TimesStat
}

func newCPUProvider() *cpuProvider {
	return &cpuProvider{times: cpu.Times}
}

func (p *cpuProvider) Sample() (string, error) {
	times, err := p.times(false)
	if err != nil {
		return "", errors.Wrap(err, "failed to read cpu times")
	}
	if len(times) == 0 {
		return "", errors.New("no cpu times reported")
	}

	cur := times[0]
	prev := p.prev
	p.prev = &cur

	if prev == nil {
		return "0.00%", nil
	}

	total := cpuTotal(cur) - cpuTotal(*prev)
	busy := total - (cur.Idle + cur.Iowait) + (prev.Idle + prev.Iowait)

	var pct float64
	if total > 0 {
		pct = busy / total * 100
	}
	// Counter wraps and rounding can push the ratio past either bound.
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}

	return fmt.Sprintf("%.2f%%", pct), nil
}

func cpuTotal(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
}

// memoryProvider renders used/total RAM.
type memoryProvider struct {
	units  UnitSystem
	sample func() (*mem.VirtualMemoryStat, error)
}

func newMemoryProvider(units UnitSystem) *memoryProvider {
	return &memoryProvider{units: units, sample: mem.VirtualMemory}
}

func (p *memoryProvider) Sample() (string, error) {
	vm, err := p.sample()
	if err != nil {
		return "", errors.Wrap(err, "failed to read memory stats")
	}

	return FormatByteUsage(vm.Used, vm.Total, p.units), nil
}

// swapProvider renders used/total swap.
type swapProvider struct {
	units  UnitSystem
	sample func() (*mem.SwapMemoryStat, error)
}

func newSwapProvider(units UnitSystem) *swapProvider {
	return &swapProvider{units: units, sample: mem.SwapMemory}
}

func (p *swapProvider) Sample() (string, error) {
	sw, err := p.sample()
	if err != nil {
		return "", errors.Wrap(err, "failed to read swap stats")
	}

	return FormatByteUsage(sw.Used, sw.Total, p.units), nil
}

// processCountProvider renders the number of currently running processes.
type processCountProvider struct {
	pids func() ([]int32, error)
}

func newProcessCountProvider() *processCountProvider {
	return &processCountProvider{pids: process.Pids}
}

func (p *processCountProvider) Sample() (string, error) {
	pids, err := p.pids()
	if err != nil {
		return "", errors.Wrap(err, "failed to list processes")
	}

	return strconv.Itoa(len(pids)), nil
}

// timestampProvider renders the current local time through a strftime
// template compiled at configuration load.
type timestampProvider struct {
	f   *strftime.Strftime
	now func() time.Time
}

func newTimestampProvider(template string) (*timestampProvider, error) {
	f, err := strftime.New(template)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timestamp template %q", template)
	}

	return &timestampProvider{f: f, now: time.Now}, nil
}

func (p *timestampProvider) Sample() (string, error) {
	return p.f.FormatString(p.now().Local()), nil
}
