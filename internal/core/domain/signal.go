package domain

// TriState is a permission that may be left unspecified.
type TriState string

// TriState values. The zero value is TriStateUnspecified.
const (
	TriStateUnspecified TriState = ""
	TriStateAllow       TriState = "allow"
	TriStateDisallow    TriState = "disallow"
)

// IsSet returns true if the value was given explicitly.
func (t TriState) IsSet() bool {
	return t != TriStateUnspecified
}

// Allows returns the permission, treating an unspecified value as allowed.
func (t TriState) Allows() bool {
	return t != TriStateDisallow
}

// String returns the string representation.
func (t TriState) String() string {
	if t == TriStateUnspecified {
		return "unspecified"
	}
	return string(t)
}

// RequestRate is a request-rate value: Requests per Seconds.
type RequestRate struct {
	Requests int `json:"requests" yaml:"requests"`
	Seconds  int `json:"seconds" yaml:"seconds"`
}

// RequestsPerSecond returns the sustained rate.
func (r RequestRate) RequestsPerSecond() float64 {
	if r.Seconds <= 0 {
		return 0
	}
	return float64(r.Requests) / float64(r.Seconds)
}

// DelaySeconds returns the minimum delay between two requests.
func (r RequestRate) DelaySeconds() float64 {
	if r.Requests <= 0 {
		return 0
	}
	return float64(r.Seconds) / float64(r.Requests)
}

// ContentSignal holds the AI usage preferences of a group.
// See https://contentsignals.org for the vocabulary.
type ContentSignal struct {
	// AITrain covers training or fine-tuning AI models.
	AITrain TriState `json:"ai_train,omitempty" yaml:"ai_train,omitempty"`

	// AIInput covers using content as input to AI models at answer time.
	AIInput TriState `json:"ai_input,omitempty" yaml:"ai_input,omitempty"`

	// Search covers building a search index and showing results.
	Search TriState `json:"search,omitempty" yaml:"search,omitempty"`
}

// HasAnySignal returns true if any field is set.
func (c ContentSignal) HasAnySignal() bool {
	return c.AITrain.IsSet() || c.AIInput.IsSet() || c.Search.IsSet()
}

// Merge fills unset fields of c from other and returns the result.
func (c ContentSignal) Merge(other ContentSignal) ContentSignal {
	if !c.AITrain.IsSet() {
		c.AITrain = other.AITrain
	}
	if !c.AIInput.IsSet() {
		c.AIInput = other.AIInput
	}
	if !c.Search.IsSet() {
		c.Search = other.Search
	}
	return c
}

// AllowsAITrain returns true unless AI training is explicitly disallowed.
func (c ContentSignal) AllowsAITrain() bool {
	return c.AITrain.Allows()
}

// AllowsAIInput returns true unless AI input use is explicitly disallowed.
func (c ContentSignal) AllowsAIInput() bool {
	return c.AIInput.Allows()
}

// AllowsSearch returns true unless search indexing is explicitly disallowed.
func (c ContentSignal) AllowsSearch() bool {
	return c.Search.Allows()
}
