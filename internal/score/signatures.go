package score

import (
	"sort"
	"strings"

	"github.com/ppiankov/gendiv/internal/extract"
	"github.com/ppiankov/gendiv/internal/model"
)

// SignatureClassifier flags semantic inputs that look like low-effort mutations
type SignatureClassifier struct {
	reservedName string
	commonValues map[string]struct{}
	repeatCount  int
}

// NewSignatureClassifier creates a classifier from the signature settings.
// The reserved name is excluded from every tally.
func NewSignatureClassifier(cfg model.SignaturesConfig) *SignatureClassifier {
	values := make(map[string]struct{}, len(cfg.CommonValues))
	for _, v := range cfg.CommonValues {
		values[v] = struct{}{}
	}
	return &SignatureClassifier{
		reservedName: cfg.ReservedName,
		commonValues: values,
		repeatCount:  cfg.RepeatCount,
	}
}

// Match reports which signature, if any, a value carries
func (c *SignatureClassifier) Match(value string) (model.Signature, bool) {
	if c.isRepeatedWord(value) {
		return model.SignatureLongString, true
	}
	if c.isCommonValue(value) {
		return model.SignatureValueSwap, true
	}
	return "", false
}

// isRepeatedWord is true for exactly repeatCount identical whitespace-separated tokens
func (c *SignatureClassifier) isRepeatedWord(value string) bool {
	words := strings.Fields(value)
	if len(words) != c.repeatCount {
		return false
	}
	for _, w := range words[1:] {
		if w != words[0] {
			return false
		}
	}
	return true
}

// isCommonValue is true when the trimmed value is one of the common commercial values
func (c *SignatureClassifier) isCommonValue(value string) bool {
	_, ok := c.commonValues[strings.TrimSpace(value)]
	return ok
}

// Classify tallies the chunk's semantic inputs: declared values passed to at least
// one category factory. Each declared value is counted once.
func (c *SignatureClassifier) Classify(ex *extract.Extraction) (model.SignatureTally, []model.SignatureMatch) {
	referenced := extract.Referenced(ex)

	names := make([]string, 0, len(ex.Declarations))
	for name := range ex.Declarations {
		names = append(names, name)
	}
	sort.Strings(names)

	var tally model.SignatureTally
	var matches []model.SignatureMatch
	for _, name := range names {
		if name == c.reservedName || !referenced[name] {
			continue
		}
		tally.Semantic++

		value := ex.Declarations[name]
		if sig, ok := c.Match(value); ok {
			tally.Mutated++
			matches = append(matches, model.SignatureMatch{Name: name, Value: value, Signature: sig})
		}
	}

	return tally, matches
}
