package interviewer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
)

type Recommendation string

const (
	Recommend      Recommendation = "recommend"
	Maybe          Recommendation = "maybe"
	NotRecommended Recommendation = "not_recommended"
	// Pending is reported by the backend while scoring has not finished.
	Pending Recommendation = "pending"
)

// Valid reports whether r is one of the final verdicts.
func (r Recommendation) Valid() bool {
	switch r {
	case Recommend, Maybe, NotRecommended:
		return true
	default:
		return false
	}
}

type Score struct {
	QuestionID int     `json:"question_id"`
	Score      float64 `json:"score"`
	Comment    string  `json:"comment,omitempty"`
}

type Submission struct {
	ID             string         `json:"id"`
	CandidateName  string         `json:"candidate_name"`
	CandidateEmail string         `json:"candidate_email"`
	OverallScore   float64        `json:"overall_score"`
	Recommendation Recommendation `json:"recommendation"`
	AISummary      string         `json:"ai_summary"`
	Scores         []Score        `json:"scores"`
	Answers        []Answer       `json:"answers"`
	SubmittedAt    string         `json:"submitted_at"`
}

// ScoreFor returns the score given to the answer of question id, if any.
func (s *Submission) ScoreFor(questionID int) *Score {
	for i := range s.Scores {
		if s.Scores[i].QuestionID == questionID {
			return &s.Scores[i]
		}
	}
	return nil
}

// AnswerFor returns the candidate's answer to question id.
func (s *Submission) AnswerFor(questionID int) string {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a.Answer
		}
	}
	return ""
}

type Summary struct {
	Total          int `json:"total"`
	Recommended    int `json:"recommended"`
	Maybe          int `json:"maybe"`
	NotRecommended int `json:"not_recommended"`
}

type Results struct {
	Interview   Interview     `json:"interview"`
	Submissions []*Submission `json:"submissions"`
	Summary     Summary       `json:"summary"`
	// Unfiltered keeps the backend summary once filters have changed Summary.
	Unfiltered *Summary `json:"-"`
}

// GetResults fetches every scored submission of an interview. The access code
// is the only credential and travels as the code query parameter.
func (c *Client) GetResults(ctx context.Context, interviewID, accessCode string) (*Results, error) {
	interviewID = strings.TrimSpace(interviewID)
	if interviewID == "" {
		return nil, &ValidationError{Problems: []string{"interview id is required"}}
	}

	q := url.Values{}
	q.Set("code", accessCode)

	var results Results
	err := c.do(ctx, call{
		op:     "get_results",
		method: http.MethodGet,
		path:   interviewPath(interviewID) + "/results",
		query:  q,
	}, &results)
	if err != nil {
		return nil, err
	}

	return &results, nil
}

func (r *Results) Len() int {
	return len(r.Submissions)
}

// Retain keeps the submissions accepted by keep and returns the ids of the
// dropped ones. Order is preserved.
func (r *Results) Retain(keep func(*Submission) bool) []string {
	var dropped []string
	kept := r.Submissions[:0]
	for _, s := range r.Submissions {
		if keep(s) {
			kept = append(kept, s)
			continue
		}
		dropped = append(dropped, s.ID)
	}
	r.Submissions = kept
	return dropped
}

// Summarize counts the submissions per recommendation.
func Summarize(submissions []*Submission) Summary {
	summary := Summary{Total: len(submissions)}
	for _, s := range submissions {
		switch s.Recommendation {
		case Recommend:
			summary.Recommended++
		case Maybe:
			summary.Maybe++
		case NotRecommended:
			summary.NotRecommended++
		}
	}
	return summary
}

// DumpToTmpFile writes the results as indented JSON into a new temp file and
// returns its name.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "interview_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
