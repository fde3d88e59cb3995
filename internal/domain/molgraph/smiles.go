package molgraph

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

// SMILES handling is deliberately syntactic: structural interpretation is
// delegated to the PubChem resolver, which canonicalizes the notation
// server-side.  Local validation only has to reject strings that could never
// be SMILES before they reach the network.

// validSMILESChars defines the allowed character set for SMILES notation.
// This is a surface check; full SMILES validation requires a parser.
var validSMILESChars = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#/\\%.*:]+$`)

// ValidateSMILES checks that s is plausibly a SMILES string: non-empty,
// drawn from the SMILES character set, with balanced () and [] brackets.
func ValidateSMILES(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New(errors.ErrCodeInvalidSMILES, "SMILES string cannot be empty")
	}
	if !validSMILESChars.MatchString(s) {
		return errors.New(errors.ErrCodeInvalidSMILES, "SMILES contains invalid characters").
			WithDetail(fmt.Sprintf("smiles=%s", s))
	}
	return validateBrackets(s)
}

// validateBrackets checks that all brackets in the SMILES string are balanced.
func validateBrackets(smiles string) error {
	var stack []rune
	closers := map[rune]rune{
		')': '(',
		']': '[',
	}

	for _, ch := range smiles {
		switch ch {
		case '(', '[':
			stack = append(stack, ch)
		case ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != closers[ch] {
				return errors.New(errors.ErrCodeInvalidSMILES, "unmatched brackets in SMILES").
					WithDetail(fmt.Sprintf("smiles=%s", smiles))
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) != 0 {
		return errors.New(errors.ErrCodeInvalidSMILES, "unclosed brackets in SMILES").
			WithDetail(fmt.Sprintf("smiles=%s", smiles))
	}
	return nil
}

// IdentifierKind classifies a compound identifier for resolver routing.
type IdentifierKind int

const (
	IdentifierCID IdentifierKind = iota
	IdentifierSMILES
	IdentifierName
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierCID:
		return "cid"
	case IdentifierSMILES:
		return "smiles"
	case IdentifierName:
		return "name"
	default:
		return "unknown"
	}
}

// smilesHint matches characters that appear in SMILES but essentially never
// in compound names.
var smilesHint = regexp.MustCompile(`[\[\]()=#@\\/]|\d[a-z]|^[a-z]\d`)

// ClassifyIdentifier guesses what kind of identifier the user supplied:
// all-digits → PubChem CID; strings with SMILES-only syntax → SMILES;
// everything else → compound name.  The resolver's lookup ladder falls back
// across kinds on a miss, so a wrong guess costs a round trip, not a failure.
func ClassifyIdentifier(s string) IdentifierKind {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseUint(s, 10, 64); err == nil && s != "" {
		return IdentifierCID
	}
	if smilesHint.MatchString(s) && ValidateSMILES(s) == nil {
		return IdentifierSMILES
	}
	return IdentifierName
}
