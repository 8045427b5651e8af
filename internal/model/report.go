package model

// DistanceKind says which metric produced an average distance
type DistanceKind string

const (
	DistanceString  DistanceKind = "string"  // normalized Levenshtein
	DistanceNumeric DistanceKind = "numeric" // range-normalized absolute difference
)

// DiversityResult is the pairwise-distance summary for one category
type DiversityResult struct {
	Category    Category     `json:"category"`
	UniqueCount int          `json:"unique_count"`
	AvgDistance float64      `json:"avg_distance"`
	Kind        DistanceKind `json:"kind"`
	Pairs       int          `json:"pairs"` // n*(n-1)/2 over unique values

	// Numeric categories only
	Numeric *NumericDetail `json:"numeric,omitempty"`
}

// NumericDetail exposes the inputs of the numeric distance formula
type NumericDetail struct {
	Parsed  int     `json:"parsed"`  // unique values whose first token parsed as a number
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Range   float64 `json:"range"`
	Divisor int     `json:"divisor"` // pair count the distance sum was divided by
	Formula string  `json:"formula"`
}

// DiversityReport is the output of one diversity run
type DiversityReport struct {
	Source  string            `json:"source"`
	Chunks  int               `json:"chunks"`
	Results []DiversityResult `json:"results"` // sorted by AvgDistance desc, then Category
}

// Signature names a known low-effort mutation pattern
type Signature string

const (
	SignatureLongString Signature = "long_string" // one word repeated exactly N times
	SignatureValueSwap  Signature = "value_swap"  // common commercial numeric literal
)

// SignatureMatch records a semantic input that matched a signature
type SignatureMatch struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Signature Signature `json:"signature"`
}

// SignatureTally counts semantic and mutated inputs
type SignatureTally struct {
	Semantic int `json:"semantic"`
	Mutated  int `json:"mutated"`
}

// Add accumulates another tally
func (t *SignatureTally) Add(o SignatureTally) {
	t.Semantic += o.Semantic
	t.Mutated += o.Mutated
}

// Percentage returns 100 * mutated / semantic, or 0 when nothing is semantic
func (t SignatureTally) Percentage() float64 {
	if t.Semantic == 0 {
		return 0.0
	}
	return float64(t.Mutated) / float64(t.Semantic) * 100
}

// ChunkSignatures is the classification outcome for one chunk
type ChunkSignatures struct {
	Index   int              `json:"index"`
	ID      string           `json:"id"`
	Tally   SignatureTally   `json:"tally"`
	Matches []SignatureMatch `json:"matches,omitempty"`
}

// SignatureReport is the output of one signature run
type SignatureReport struct {
	Source string            `json:"source"`
	Chunks []ChunkSignatures `json:"chunks"` // every analyzed chunk, in input order
	Total  SignatureTally    `json:"total"`
}

// ChunkAnalysis is everything one chunk contributes to either pipeline
type ChunkAnalysis struct {
	Index   int                   `json:"index"`
	ID      string                `json:"id"`
	Groups  map[Category][]string `json:"groups"` // resolved values per category, one per usage
	Tally   SignatureTally        `json:"tally"`
	Matches []SignatureMatch      `json:"matches,omitempty"`
}
