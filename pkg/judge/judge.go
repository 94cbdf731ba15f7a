// Package judge scores legal arguments submitted by students.
//
// Only a stub implementation exists; it returns the same evaluation for every
// submission.
package judge

import (
	"context"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Judge evaluates a submission.
type Judge interface {
	Score(ctx context.Context, sub *Submission) (*Evaluation, error)

	// Name returns the judge name (e.g., "stub").
	Name() string
}

// Submission is an argument sent for scoring. Role and Argument are required.
// The optional fields are kept as raw JSON of any type; every field the
// struct does not name is kept in Extra. Neither is interpreted.
type Submission struct {
	App      json.RawMessage `json:"app,omitempty"`
	Version  json.RawMessage `json:"version,omitempty"`
	Lang     json.RawMessage `json:"lang,omitempty"`
	User     json.RawMessage `json:"user,omitempty"`
	Case     json.RawMessage `json:"case,omitempty"`
	Role     *string         `json:"role"`
	Argument *string         `json:"argument"`
	Rubric   json.RawMessage `json:"rubric,omitempty"`
	Output   json.RawMessage `json:"output,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var submissionFields = []string{
	"app", "version", "lang", "user", "case", "role", "argument", "rubric", "output",
}

// UnmarshalJSON decodes the named fields and collects the rest into Extra.
func (s *Submission) UnmarshalJSON(data []byte) error {
	type plain Submission
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, f := range submissionFields {
		delete(all, f)
	}

	*s = Submission(p)
	if len(all) > 0 {
		s.Extra = all
	}
	return nil
}

// Validate checks that the required fields are present.
func (s *Submission) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Role, validation.NotNil),
		validation.Field(&s.Argument, validation.NotNil),
	)
}

// Evaluation is the result of scoring a submission.
type Evaluation struct {
	ScoreTotal int      `json:"score_total"`
	Feedback   Feedback `json:"feedback"`
}

// Feedback explains a score.
type Feedback struct {
	Verdict    string         `json:"verdict"`
	Strengths  []string       `json:"strengths"`
	Weaknesses []string       `json:"weaknesses"`
	Tips       []string       `json:"tips"`
	Breakdown  map[string]int `json:"breakdown"`
	Confidence float64        `json:"confidence"`
}
