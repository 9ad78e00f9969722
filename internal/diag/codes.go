package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Dictionary loading
	DictInfo           Code = 1000
	DictMalformedEntry Code = 1001
	DictUnknownBuiltin Code = 1002
	DictAlreadyLoaded  Code = 1003

	// Typo findings
	TypoInfo      Code = 2000
	TypoConfident Code = 2001
	TypoAmbiguous Code = 2002
	TypoReason    Code = 2003

	// Configuration
	CfgInfo    Code = 3000
	CfgInvalid Code = 3001

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	DictInfo:           "Dictionary information",
	DictMalformedEntry: "Malformed dictionary entry",
	DictUnknownBuiltin: "Unknown built-in dictionary",
	DictAlreadyLoaded:  "Built-in dictionaries already loaded",
	TypoInfo:           "Typo information",
	TypoConfident:      "Misspelling with an unambiguous correction",
	TypoAmbiguous:      "Misspelling with several candidate corrections",
	TypoReason:         "Misspelling flagged with a reason",
	CfgInfo:            "Configuration information",
	CfgInvalid:         "Invalid configuration",
	IOLoadFileError:    "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DIC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
