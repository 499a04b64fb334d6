package daterange

import "github.com/spf13/pflag"

// Flag adapts an optional DateRange to pflag.Value so it can be bound to a command-line flag.
type Flag struct {
	Range *DateRange
}

var _ pflag.Value = &Flag{}

func (f *Flag) String() string {
	if f.Range == nil {
		return ""
	}
	return f.Range.String()
}

func (f *Flag) Set(s string) error {
	r, err := ParseText(s)
	if err != nil {
		return err
	}
	f.Range = &r
	return nil
}

func (f *Flag) Type() string {
	return "dateRange"
}

// Value returns the bound range, or nil if the flag was never set.
func (f *Flag) Value() *DateRange {
	return f.Range
}
