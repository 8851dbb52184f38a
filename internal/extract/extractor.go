// Package extract turns a call transcript into structured order data
// using deterministic phrase matching. The contract is precision over
// recall: a missed item degrades gracefully, a wrong item or quantity
// does not, so every heuristic defaults to the safe value instead of
// guessing.
package extract

import (
	"regexp"
	"strings"
	"time"

	"dialdish/internal/catalog"
	"dialdish/internal/transcript"
)

// DefaultReadyOffset is applied when no offset is configured.
const DefaultReadyOffset = 20 * time.Minute

type Extractor struct {
	vocab Vocabulary
}

func New(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// --------------------------------------------------
// Items
// --------------------------------------------------

// Items scans the concatenated lowercase transcript for each catalog
// item's canonical name as a literal substring. Quantity comes from the
// single word immediately preceding the phrase, looked up in the
// quantity table; anything else means 1.
//
// Each distinct catalog phrase yields at most one line, so a customer
// restating or correcting a quantity keeps only the first phrasing that
// carries a preceding word. Known limitation, kept deliberately.
func (e *Extractor) Items(tr *transcript.Transcript, cat *catalog.Catalog) []Line {
	lowered := strings.ToLower(tr.FullText())
	if lowered == "" {
		return nil
	}

	var lines []Line
	for _, category := range cat.Categories() {
		for _, item := range cat.CategoryItems(category) {
			phrase := catalog.Normalize(item.Name)
			if phrase == "" || !strings.Contains(lowered, phrase) {
				continue
			}

			lines = append(lines, Line{
				Name:          item.Name,
				Price:         item.Price,
				Quantity:      e.quantityBefore(lowered, phrase),
				Modifications: "",
			})
		}
	}
	return lines
}

// quantityBefore finds the leftmost occurrence of the phrase that has a
// word immediately before it and looks that word up in the quantity
// table. No such occurrence, or an unknown word, means 1.
func (e *Extractor) quantityBefore(lowered, phrase string) int {
	re := regexp.MustCompile(`(\w+)\s+` + regexp.QuoteMeta(phrase))
	m := re.FindStringSubmatch(lowered)
	if m == nil {
		return 1
	}
	if qty, ok := e.vocab.QuantityWords[m[1]]; ok {
		return qty
	}
	return 1
}

// --------------------------------------------------
// Customer fields
// --------------------------------------------------

// Customer pulls contact fields out of the transcript. First phone
// match wins; name rules run in fixed order and the first hit wins,
// title-cased. Email stays empty until a pattern for it exists.
func (e *Extractor) Customer(tr *transcript.Transcript) Customer {
	text := tr.FullText()

	var info Customer
	if phone, ok := e.vocab.PhoneRule.Match(text); ok {
		info.Phone = phone
	}
	for _, rule := range e.vocab.NameRules {
		if name, ok := rule.Match(text); ok {
			info.Name = titleCase(name)
			break
		}
	}
	return info
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// --------------------------------------------------
// Order metadata
// --------------------------------------------------

// Fulfillment resolves the fulfillment type from the rule list. Rules
// run in fixed precedence order (dine-in before delivery), so a
// transcript mentioning both resolves to the earlier rule.
func (e *Extractor) Fulfillment(tr *transcript.Transcript) Fulfillment {
	lowered := strings.ToLower(tr.FullText())
	for _, rule := range e.vocab.FulfillmentRules {
		if rule.Matches(lowered) {
			return rule.Type
		}
	}
	return FulfillmentTakeout
}

// SpecialInstructions is a coarse presence flag, not content
// extraction: any marker anywhere yields the fixed note pointing staff
// back at the conversation.
func (e *Extractor) SpecialInstructions(tr *transcript.Transcript) string {
	lowered := strings.ToLower(tr.FullText())
	for _, marker := range e.vocab.InstructionMarkers {
		if strings.Contains(lowered, marker) {
			return e.vocab.InstructionNote
		}
	}
	return ""
}

// OrderComplete reports whether the conversation reached a completed
// order, gated on the completion phrase table.
func (e *Extractor) OrderComplete(tr *transcript.Transcript) bool {
	lowered := strings.ToLower(tr.FullText())
	for _, phrase := range e.vocab.CompletionPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// EstimateReadyTime returns now plus the configured offset. Fixed
// offset, no queue-load adjustment.
func EstimateReadyTime(now time.Time, offset time.Duration) time.Time {
	if offset <= 0 {
		offset = DefaultReadyOffset
	}
	return now.Add(offset)
}
