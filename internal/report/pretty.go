package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"typocheck/internal/diag"
	"typocheck/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.FgMagenta)
	underColor   = color.New(color.FgGreen)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		formatLocation(fs, d.Primary, opts.PathMode),
		severityLabel(d.Severity, opts.Color),
		codeLabel(d.Code, opts.Color),
		d.Message)

	printContext(w, d.Primary, fs, opts.Color)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  note: %s\n", note.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  fix [%s] (%s): %s\n", fix.ID, fix.Applicability.String(), fix.Title)
		}
	}
}

// printContext shows the offending line with a caret underline. The underline
// is aligned by display width, so wide runes before the span do not shift it.
func printContext(w io.Writer, span source.Span, fs *source.FileSet, colored bool) {
	if span.Empty() && span.Start == 0 {
		return
	}
	file := fs.Get(span.File)
	startPos, endPos := fs.Resolve(span)

	lineText := file.GetLine(startPos.Line)
	if lineText == "" {
		return
	}

	lineStart, lineEnd := file.LineSpan(startPos.Line)
	markStart := span.Start - lineStart
	markEnd := span.End - lineStart
	if endPos.Line != startPos.Line || markEnd > lineEnd-lineStart {
		markEnd = lineEnd - lineStart
	}
	if markEnd < markStart {
		markEnd = markStart
	}

	prefixWidth := runewidth.StringWidth(lineText[:markStart])
	markWidth := runewidth.StringWidth(lineText[markStart:markEnd])
	if markWidth == 0 {
		markWidth = 1
	}

	underline := "^" + strings.Repeat("~", markWidth-1)
	if colored {
		underline = underColor.Sprint(underline)
	}

	fmt.Fprintf(w, "    %s\n", lineText)
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", prefixWidth), underline)
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(label)
	case diag.SevWarning:
		return warningColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}

func codeLabel(code diag.Code, colored bool) string {
	if colored {
		return codeColor.Sprint(code.ID())
	}
	return code.ID()
}

func formatLocation(fs *source.FileSet, span source.Span, mode PathMode) string {
	file := fs.Get(span.File)
	startPos, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(file, fs, mode), startPos.Line, startPos.Col)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
