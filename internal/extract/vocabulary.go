package extract

// Vocabulary is the declarative side of extraction: every phrase table
// the heuristics consult lives here, not in code, so tests can swap in
// a tiny vocabulary and production can tune phrases without touching
// the matching logic.
type Vocabulary struct {
	// QuantityWords maps the single word preceding an item phrase to a
	// count. Anything absent here means quantity 1.
	QuantityWords map[string]int

	// CompletionPhrases gate submission: the conversation must contain
	// at least one of them to count as a finished order.
	CompletionPhrases []string

	// InstructionMarkers flag that special requests were discussed.
	// Their presence yields the fixed InstructionNote, not extracted
	// content.
	InstructionMarkers []string
	InstructionNote    string

	// NameRules are tried in order; first match wins.
	NameRules []FieldRule

	// PhoneRule captures the first phone-shaped number.
	PhoneRule FieldRule

	// FulfillmentRules are tried in order; first match wins, default
	// is takeout.
	FulfillmentRules []FulfillmentRule
}

// DefaultVocabulary returns the production phrase tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		QuantityWords: map[string]int{
			"one":   1,
			"two":   2,
			"three": 3,
			"four":  4,
			"five":  5,
		},

		CompletionPhrases: []string{
			"process this order",
			"order total",
			"ready for pickup",
			"thank you for your order",
			"being prepared",
			"start preparing",
		},

		InstructionMarkers: []string{"extra", "no ", "without"},
		InstructionNote:    "See conversation for special requests",

		NameRules: []FieldRule{
			NewFieldRule("my-name-is", `(?i)my name is (\w+(?:\s+\w+)?)`),
			NewFieldRule("this-is", `(?i)this is (\w+(?:\s+\w+)?)`),
			NewFieldRule("possessive", `(?i)name['’]?s\s+(\w+(?:\s+\w+)?)`),
		},

		PhoneRule: NewFieldRule("phone", `\b(\d{3}[-.]?\d{3}[-.]?\d{4})\b`),

		FulfillmentRules: []FulfillmentRule{
			{Phrases: []string{"dine in", "dining in"}, Type: FulfillmentDineIn},
			{Phrases: []string{"delivery"}, Type: FulfillmentDelivery},
		},
	}
}
