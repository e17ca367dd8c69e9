package stackengine

import (
	"fmt"
	"strconv"
)

// outputName is the intermediate filename the synthesised script always
// saves its combined result under, inside the work directory.
const outputName = "stacked_result.fit"

// buildScript renders the textual script the engine executes: convert the
// staged sequence into the engine's working format, then combine it with
// the chosen method, rejection and normalisation, grounded directly on the
// stack_line construction the original tooling used.
func buildScript(stagingDir, workDir string, p Params) string {
	return fmt.Sprintf(`requires 1.2
# stacking script generated by darkmaster
cd "%s"
convert frame -out=%s
cd "%s"
%s
`, stagingDir, workDir, workDir, stackLine(p))
}

func stackLine(p Params) string {
	var line string
	switch p.StackMethod {
	case MethodMedian:
		line = "stack frame median"
	default: // average
		if p.RejectionMethod == RejectionNone {
			line = "stack frame rej 0 0 -norm=no"
		} else {
			line = "stack frame rej " +
				strconv.FormatFloat(p.RejectionParam1, 'g', -1, 64) + " " +
				strconv.FormatFloat(p.RejectionParam2, 'g', -1, 64) +
				" -norm=no -rej=" + string(p.RejectionMethod)
		}
	}

	switch p.OutputNorm {
	case NormAddscale:
		line += " -out=addscale"
	case NormRejection:
		line += " -out=rejection"
	default: // noscale
		line += " -out=noscale"
	}
	return line
}
