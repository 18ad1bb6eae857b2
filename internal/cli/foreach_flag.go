package cli

import (
	"github.com/spf13/pflag"

	"github.com/frederikschubertflex/workmux/internal/expand"
)

// foreachValue is a pflag.Value for --foreach: it validates the
// "AXIS:v1,v2;AXIS2:v3,v4" syntax at flag-parse time, so a malformed
// matrix is rejected by cobra's usual flag-error path instead of
// surfacing later out of expand.Expand.
type foreachValue struct{ raw string }

var _ pflag.Value = (*foreachValue)(nil)

func (v *foreachValue) String() string { return v.raw }
func (v *foreachValue) Type() string   { return "foreach" }

func (v *foreachValue) Set(s string) error {
	if s != "" {
		if err := expand.ValidateForeachSyntax(s); err != nil {
			return err
		}
	}
	v.raw = s
	return nil
}
