package diag

import "github.com/dekarrin/rosed"

// reportWidth is the terminal column assumed when wrapping diagnostic text
// for a report.
const reportWidth = 80

// WrappedMessage returns FullMessage() word-wrapped to reportWidth, for use
// by front ends rendering a list of diagnostics to a terminal.
func (e ParsingError) WrappedMessage() string {
	return rosed.Edit(e.FullMessage()).Wrap(reportWidth).String()
}

// WrappedMessage returns w.Error() word-wrapped to reportWidth.
func WrappedMessage(w WarningType) string {
	return rosed.Edit(w.Error()).Wrap(reportWidth).String()
}
