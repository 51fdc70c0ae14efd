package cli

import (
	"strings"

	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/spf13/pflag"
)

// sourceFlag selects one board or, by default, both.
type sourceFlag struct {
	source domain.Source
}

var _ pflag.Value = (*sourceFlag)(nil)

func (f *sourceFlag) String() string {
	if f.source == "" {
		return "all"
	}
	return string(f.source)
}

func (f *sourceFlag) Set(v string) error {
	if strings.EqualFold(strings.TrimSpace(v), "all") {
		f.source = ""
		return nil
	}
	src, err := domain.ParseSource(v)
	if err != nil {
		return err
	}
	f.source = src
	return nil
}

func (f *sourceFlag) Type() string { return "source" }

// Sources returns the selected boards in report order.
func (f *sourceFlag) Sources() []domain.Source {
	if f.source == "" {
		return domain.AllSources
	}
	return []domain.Source{f.source}
}

func addSourceFlag(flags *pflag.FlagSet, f *sourceFlag) {
	flags.Var(f, "source", "board to use: work_orders, deals or all")
}
