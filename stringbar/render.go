package stringbar

import "strings"

// snapshot is the immutable result of one successful configuration load:
// the parsed configuration plus the providers built from it. The bar loop
// holds exactly one snapshot and swaps it wholesale on reload, so a tick
// never observes a half-applied configuration.
type snapshot struct {
	cfg      *Config
	sections []renderSection
}

type renderSection struct {
	kind     string
	before   string
	after    string
	provider Provider
}

func newSnapshot(cfg *Config) (*snapshot, error) {
	snap := snapshot{
		cfg:      cfg,
		sections: make([]renderSection, len(cfg.Sections)),
	}

	for i, section := range cfg.Sections {
		provider, err := NewProvider(section.Module, cfg)
		if err != nil {
			return nil, err
		}

		snap.sections[i] = renderSection{
			kind:     section.Module.Kind(),
			before:   section.Decoration.Before,
			after:    section.Decoration.After,
			provider: provider,
		}
	}

	return &snap, nil
}

// Render samples every section and joins the outputs with the separator. A
// failing provider is reported to the journaler and its whole section
// renders empty for this tick; the other sections are unaffected.
func (s *snapshot) Render(j Journaler) string {
	outputs := make([]string, len(s.sections))

	for i, section := range s.sections {
		out, err := section.provider.Sample()
		if err != nil {
			j.Write(&EventProviderError{
				Module: section.kind,
				Error:  err.Error(),
			})
			continue
		}

		outputs[i] = section.before + out + section.after
	}

	return strings.Join(outputs, s.cfg.Separator)
}
