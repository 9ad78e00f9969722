package report

import (
	"fmt"
	"io"

	"typocheck/internal/diag"
	"typocheck/internal/source"
)

// Short prints one line per diagnostic: location, code, and message. Handy
// for grepping and editor integrations.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, pathMode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s: %s\n",
			formatLocation(fs, d.Primary, pathMode),
			d.Code.ID(),
			d.Message)
	}
}
