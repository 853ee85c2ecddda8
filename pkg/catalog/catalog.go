// Package catalog holds the read-only table of compliance findings per
// document class.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDocumentClass = errors.New("unknown document class")

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type DocumentClass string

const (
	ClassNDA      DocumentClass = "nda"
	ClassContract DocumentClass = "contract"
	ClassPolicy   DocumentClass = "policy"
)

// Title is the human readable name used in prompts.
func (c DocumentClass) Title() string {
	switch c {
	case ClassNDA:
		return "Non-Disclosure Agreement"
	case ClassContract:
		return "Service Contract"
	case ClassPolicy:
		return "Privacy Policy"
	default:
		return string(c)
	}
}

// Finding is a single compliance issue. Values are never mutated after load.
type Finding struct {
	ID              string   `json:"id"`
	Severity        Severity `json:"severity"`
	Description     string   `json:"description"`
	Explanation     string   `json:"explanation"`
	RemediationText string   `json:"remediation_text,omitempty"`
}

func (f Finding) IsHigh() bool {
	return f.Severity == SeverityHigh
}

// ParseDocumentClass accepts the lowercase class code.
func ParseDocumentClass(raw string) (DocumentClass, error) {
	class := DocumentClass(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := findingsByClass[class]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentClass, raw)
	}
	return class, nil
}

// Classes returns the known document classes in a stable order.
func Classes() []DocumentClass {
	return []DocumentClass{ClassNDA, ClassContract, ClassPolicy}
}

// Lookup returns a copy of the catalog for class.
func Lookup(class DocumentClass) ([]Finding, error) {
	findings, ok := findingsByClass[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentClass, class)
	}
	out := make([]Finding, len(findings))
	copy(out, findings)
	return out, nil
}

// Find returns the catalog entry for id within class.
func Find(class DocumentClass, id string) (Finding, bool) {
	for _, f := range findingsByClass[class] {
		if f.ID == id {
			return f, true
		}
	}
	return Finding{}, false
}
