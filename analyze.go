// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import "strings"

// scalarAnalysis records which scalar styles are legal for a value and
// whether it must be rendered across more than one line.
type scalarAnalysis struct {
	value              string
	isMultiline        bool
	flowPlainAllowed   bool
	blockPlainAllowed  bool
	singleQuoteAllowed bool
	blockAllowed       bool
}

// analyzeScalar classifies value against the YAML lexical rules that decide
// which of the five scalar styles may represent it without ambiguity.
// unicodeOutput is false when the sink's encoding cannot pass non-ASCII
// characters through unescaped, which folds into "special characters".
func analyzeScalar(value string, unicodeOutput bool) scalarAnalysis {
	if value == "" {
		return scalarAnalysis{flowPlainAllowed: false, blockPlainAllowed: true, singleQuoteAllowed: true}
	}

	var (
		blockIndicators   bool
		flowIndicators    bool
		lineBreaks        bool
		specialCharacters bool
		leadingSpace      bool
		leadingBreak      bool
		trailingSpace     bool
		trailingBreak     bool
		breakSpace        bool
		spaceBreak        bool
	)

	runes := []rune(value)
	n := len(runes)

	if strings.HasPrefix(value, "---") || strings.HasPrefix(value, "...") {
		blockIndicators = true
		flowIndicators = true
	}

	precededByWhitespace := true
	var followedByWhitespace bool
	if n > 1 {
		followedByWhitespace = isBlankZ(runes[1])
	} else {
		followedByWhitespace = true
	}

	var previousSpace, previousBreak bool

	for i := 0; i < n; i++ {
		r := runes[i]

		if i == 0 {
			switch r {
			case '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
				flowIndicators = true
				blockIndicators = true
			case '?', ':':
				flowIndicators = true
				if followedByWhitespace {
					blockIndicators = true
				}
			case '-':
				if followedByWhitespace {
					flowIndicators = true
					blockIndicators = true
				}
			}
		} else {
			switch r {
			case ',', '?', '[', ']', '{', '}':
				flowIndicators = true
			case ':':
				flowIndicators = true
				if followedByWhitespace {
					blockIndicators = true
				}
			case '#':
				if precededByWhitespace {
					flowIndicators = true
					blockIndicators = true
				}
			}
		}

		if !isPrintable(r) || (!unicodeOutput && !isASCII(r)) {
			specialCharacters = true
		}
		if isBreak(r) {
			lineBreaks = true
		}

		if isSpace(r) {
			if i == 0 {
				leadingSpace = true
			}
			if i == n-1 {
				trailingSpace = true
			}
			if previousBreak {
				breakSpace = true
			}
			previousSpace = true
			previousBreak = false
		} else if isBreak(r) {
			if i == 0 {
				leadingBreak = true
			}
			if i == n-1 {
				trailingBreak = true
			}
			if previousSpace {
				spaceBreak = true
			}
			previousSpace = false
			previousBreak = true
		} else {
			previousSpace = false
			previousBreak = false
		}

		precededByWhitespace = isBlankZ(r)
		if i+2 < n {
			followedByWhitespace = isBlankZ(runes[i+2])
		} else {
			followedByWhitespace = true
		}
	}

	a := scalarAnalysis{
		value:              value,
		isMultiline:        lineBreaks,
		flowPlainAllowed:   true,
		blockPlainAllowed:  true,
		singleQuoteAllowed: true,
		blockAllowed:       true,
	}

	if leadingSpace || leadingBreak || trailingSpace || trailingBreak {
		a.flowPlainAllowed = false
		a.blockPlainAllowed = false
	}
	if trailingSpace {
		a.blockAllowed = false
	}
	if breakSpace {
		a.flowPlainAllowed = false
		a.blockPlainAllowed = false
		a.singleQuoteAllowed = false
	}
	if spaceBreak || specialCharacters {
		a.flowPlainAllowed = false
		a.blockPlainAllowed = false
		a.singleQuoteAllowed = false
		a.blockAllowed = false
	}
	if lineBreaks {
		a.flowPlainAllowed = false
		a.blockPlainAllowed = false
	}
	if flowIndicators {
		a.flowPlainAllowed = false
	}
	if blockIndicators {
		a.blockPlainAllowed = false
	}

	return a
}
