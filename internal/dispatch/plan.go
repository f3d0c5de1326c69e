// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"
	"strings"

	"macdev-cli/internal/activate"
	"macdev-cli/internal/execrun"
)

type (
	// Plan is the fully resolved outcome of branch selection: the
	// transforms to apply and the single collaborator command to
	// delegate to. Plans are built once per invocation and are not
	// modified afterwards; Command.Env is filled in at execution time
	// from the transformed snapshot.
	Plan struct {
		// GOOS is the resolved host platform.
		GOOS string
		// Profile is the environment-selected profile value.
		Profile Profile
		// Branch is the selected execution branch.
		Branch Branch
		// Transforms run in order before delegation.
		Transforms []activate.Transform
		// Command is the delegated collaborator invocation.
		Command execrun.CommandSpec
	}

	// argvProvider is implemented by transforms that run an external
	// command, so plans can render the command line.
	argvProvider interface {
		Argv() []string
	}
)

// Describe renders the plan as one line per step, for dry-run output
// and traces.
func (p *Plan) Describe() []string {
	lines := make([]string, 0, len(p.Transforms)+2)
	lines = append(lines, fmt.Sprintf("platform %s, profile %q, branch %s", p.GOOS, p.Profile, p.Branch))

	for _, tr := range p.Transforms {
		if ap, ok := tr.(argvProvider); ok {
			lines = append(lines, fmt.Sprintf("transform %s: %s", tr.Name(), strings.Join(ap.Argv(), " ")))
			continue
		}
		lines = append(lines, fmt.Sprintf("transform %s", tr.Name()))
	}

	lines = append(lines, fmt.Sprintf("exec %s: %s", p.Branch, strings.Join(p.Command.Argv(), " ")))
	return lines
}
