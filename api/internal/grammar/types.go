package grammar

// Error taxonomy labels. These are part of the API contract and are stored
// verbatim in history records.
const (
	TypeSpelling        = "Spelling"
	TypeGrammar         = "Grammar"
	TypeGenderAgreement = "Gender Agreement"
	TypeNumberAgreement = "Number Agreement"
	TypeInsertion       = "Insertion"
	TypeDeletion        = "Deletion"
	TypeRepetition      = "Repetition"
)

// Error is one flagged issue in a report. IDs are assigned by the final
// renumbering pass and are only unique within a single report.
type Error struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Original   string `json:"original"`
	Suggestion string `json:"suggestion"`
	Context    string `json:"context,omitempty"`
}

// Stats is the derived quality mapping for one report. Scores are in
// [0,100], higher is better.
type Stats struct {
	Grammar     int `json:"grammar"`
	Fluency     int `json:"fluency"`
	Clarity     int `json:"clarity"`
	Engagement  int `json:"engagement"`
	TotalWords  int `json:"total_words"`
	TotalErrors int `json:"total_errors"`
}

// Report is the output of one grammar check. Corrected holds the joined
// model corrections and is kept for diagnostics, not serialized.
type Report struct {
	Errors []Error `json:"errors"`
	Stats  Stats   `json:"stats"`

	Corrected string `json:"-"`
}
