package driver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"typocheck/internal/diag"
	"typocheck/internal/source"
	"typocheck/internal/spell"
	"typocheck/internal/tokenize"
)

// FileResult содержит результат проверки одного файла
type FileResult struct {
	Path    string        // Путь к файлу, как его передали
	FileID  source.FileID // ID файла в FileSet
	Bag     *diag.Bag     // Диагностики
	Skipped bool          // Файл пропущен (бинарный)
}

// ignoreDirective is the inline suppression marker. Bare `typocheck:ignore`
// silences the whole line; `typocheck:ignore word1,word2` silences only the
// listed words on that line.
var ignoreDirective = regexp.MustCompile(`typocheck:ignore\b(?:[ \t]+([\w'’,-]+))?`)

// CheckFile loads path into fileSet and scans it. I/O failures become an
// IOLoadFileError diagnostic rather than a hard error so a directory run can
// keep going past one unreadable file.
func CheckFile(ctx context.Context, fileSet *source.FileSet, checker *spell.Checker, path string, opts CheckOptions) (*FileResult, error) {
	bag := diag.NewBag(opts.maxDiagnostics())

	fileID, err := fileSet.Load(path)
	if err != nil {
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		return &FileResult{Path: path, Bag: bag}, nil
	}

	if err := scanFile(ctx, fileSet, checker, fileID, bag, opts); err != nil {
		return nil, err
	}
	return &FileResult{Path: path, FileID: fileID, Bag: bag}, nil
}

// scanFile walks the file line by line and converts every detected
// misspelling into a diagnostic. Scanning is read-only with respect to the
// checker, so many scanFile calls may share one checker.
func scanFile(ctx context.Context, fileSet *source.FileSet, checker *spell.Checker, fileID source.FileID, bag *diag.Bag, opts CheckOptions) error {
	tokenizer, err := opts.tokenizer()
	if err != nil {
		return err
	}

	file := fileSet.Get(fileID)
	numLines := file.NumLines()

	for lineNum := uint32(1); lineNum <= numLines; lineNum++ {
		// Проверка отмены (не на каждой строке, чтобы не тормозить цикл)
		if lineNum%512 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		line := file.GetLine(lineNum)
		extraIgnore := opts.IgnoreWords
		if m := ignoreDirective.FindStringSubmatch(line); m != nil {
			if m[1] == "" {
				continue
			}
			extraIgnore = mergedExtraIgnore(extraIgnore, splitDirectiveWords(m[1]))
		}

		lineStart, _ := file.LineSpan(lineNum)
		for issue := range spell.CheckLine(checker, line, tokenizer, extraIgnore) {
			if !bag.Add(issueDiagnostic(fileID, lineStart, issue)) {
				return nil
			}
		}
	}
	return nil
}

func splitDirectiveWords(list string) []string {
	parts := strings.Split(list, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// issueDiagnostic renders one misspelling as a warning with a fix per
// candidate. Only unambiguous corrections get an always-safe fix.
func issueDiagnostic(fileID source.FileID, lineStart uint32, issue spell.Issue[tokenize.Word]) diag.Diagnostic {
	offset, err := safecast.Conv[uint32](issue.Token.Start())
	if err != nil {
		panic(fmt.Errorf("token offset overflow: %w", err))
	}
	wordLen, err := safecast.Conv[uint32](len(issue.Word))
	if err != nil {
		panic(fmt.Errorf("token length overflow: %w", err))
	}
	span := source.Span{File: fileID, Start: lineStart + offset, End: lineStart + offset + wordLen}

	correction := issue.Correction
	code := diag.TypoAmbiguous
	applicability := diag.FixNeedsReview
	switch {
	case correction.Fix:
		code = diag.TypoConfident
		applicability = diag.FixAlwaysSafe
	case correction.Reason != "":
		code = diag.TypoReason
	}

	d := diag.NewWarning(code, span, issueMessage(issue))
	for i, candidate := range correction.Candidates {
		replacement := matchCase(issue.Word, candidate)
		d = d.WithFix(diag.Fix{
			ID:            fmt.Sprintf("%s-%d-%d-%d", code.ID(), fileID, span.Start, i),
			Title:         fmt.Sprintf("replace %q with %q", issue.Word, replacement),
			Applicability: applicability,
			Edits: []diag.TextEdit{{
				Span:    span,
				NewText: replacement,
				OldText: issue.Word,
			}},
		})
	}
	return d
}

func issueMessage(issue spell.Issue[tokenize.Word]) string {
	correction := issue.Correction
	quoted := make([]string, len(correction.Candidates))
	for i, cand := range correction.Candidates {
		quoted[i] = strconv.Quote(matchCase(issue.Word, cand))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%q should be %s", issue.Word, strings.Join(quoted, " or "))
	if correction.Reason != "" {
		fmt.Fprintf(&b, " (%s)", correction.Reason)
	}
	return b.String()
}

// matchCase transfers the casing of the flagged word onto a candidate:
// all-caps stays all-caps, a capitalized word capitalizes the candidate,
// anything else is used verbatim.
func matchCase(word, candidate string) string {
	if word == strings.ToUpper(word) && word != strings.ToLower(word) {
		return strings.ToUpper(candidate)
	}

	first, size := utf8.DecodeRuneInString(word)
	if unicode.IsUpper(first) && word[size:] == strings.ToLower(word[size:]) {
		cFirst, cSize := utf8.DecodeRuneInString(candidate)
		if cFirst == utf8.RuneError {
			return candidate
		}
		return string(unicode.ToUpper(cFirst)) + candidate[cSize:]
	}
	return candidate
}
