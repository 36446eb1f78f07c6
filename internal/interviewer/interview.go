package interviewer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const apiInterviewsPath = "/interviews"

type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	// ExpectedFocus is only returned to the recruiter.
	ExpectedFocus string `json:"expected_focus,omitempty"`
}

// Interview is the backend-owned interview as seen by the client.
type Interview struct {
	ID              string     `json:"id"`
	JobTitle        string     `json:"job_title"`
	JobRequirements string     `json:"job_requirements,omitempty"`
	Questions       []Question `json:"questions"`
	CreatedAt       string     `json:"created_at,omitempty"`
}

type CreateInterviewRequest struct {
	JobTitle        string   `json:"job_title" validate:"required"`
	JobRequirements string   `json:"job_requirements" validate:"required"`
	KeySkills       []string `json:"key_skills"`
}

type CreateInterviewResponse struct {
	ID           string     `json:"id"`
	AccessCode   string     `json:"hr_access_code"`
	InterviewURL string     `json:"interview_url"`
	ResultsURL   string     `json:"results_url"`
	Questions    []Question `json:"questions"`
}

type Answer struct {
	QuestionID int    `json:"question_id" mapstructure:"question_id"`
	Answer     string `json:"answer" mapstructure:"answer" validate:"required"`
}

type SubmitAnswersRequest struct {
	CandidateName  string   `json:"candidate_name" validate:"required"`
	CandidateEmail string   `json:"candidate_email" validate:"required,email"`
	Answers        []Answer `json:"answers" validate:"required,min=1,dive"`
}

type SubmitAnswersResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ShareLinks holds the absolute links a recruiter hands out after creation.
type ShareLinks struct {
	Candidate string
	Results   string
}

// CreateInterview asks the backend to generate questions for a new interview.
// Required fields are checked first; a request that fails validation is never sent.
func (c *Client) CreateInterview(ctx context.Context, req *CreateInterviewRequest) (*CreateInterviewResponse, error) {
	if req == nil {
		return nil, &ValidationError{Problems: []string{"interview details are required"}}
	}

	normalized := CreateInterviewRequest{
		JobTitle:        strings.TrimSpace(req.JobTitle),
		JobRequirements: strings.TrimSpace(req.JobRequirements),
		KeySkills:       cleanSkills(req.KeySkills),
	}

	if err := validateRequest(&normalized); err != nil {
		return nil, err
	}

	var resp CreateInterviewResponse
	err := c.do(ctx, call{
		op:         "create_interview",
		method:     http.MethodPost,
		path:       apiInterviewsPath,
		withDevice: true,
		body:       normalized,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetInterview fetches the candidate-facing view of an interview.
func (c *Client) GetInterview(ctx context.Context, id string) (*Interview, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ValidationError{Problems: []string{"interview id is required"}}
	}

	var interview Interview
	err := c.do(ctx, call{
		op:     "get_interview",
		method: http.MethodGet,
		path:   interviewPath(id),
	}, &interview)
	if err != nil {
		return nil, err
	}

	return &interview, nil
}

// SubmitAnswers posts the candidate's answers once. Repeated calls are sent
// as is; the backend decides whether a second submission is accepted.
func (c *Client) SubmitAnswers(ctx context.Context, interviewID string, req *SubmitAnswersRequest) (*SubmitAnswersResponse, error) {
	interviewID = strings.TrimSpace(interviewID)
	if interviewID == "" {
		return nil, &ValidationError{Problems: []string{"interview id is required"}}
	}
	if req == nil {
		return nil, &ValidationError{Problems: []string{"answers are required"}}
	}

	normalized := SubmitAnswersRequest{
		CandidateName:  strings.TrimSpace(req.CandidateName),
		CandidateEmail: strings.TrimSpace(req.CandidateEmail),
		Answers:        make([]Answer, 0, len(req.Answers)),
	}
	for _, a := range req.Answers {
		normalized.Answers = append(normalized.Answers, Answer{
			QuestionID: a.QuestionID,
			Answer:     strings.TrimSpace(a.Answer),
		})
	}

	if err := validateRequest(&normalized); err != nil {
		return nil, err
	}

	var resp SubmitAnswersResponse
	err := c.do(ctx, call{
		op:     "submit_answers",
		method: http.MethodPost,
		path:   interviewPath(interviewID) + "/submit",
		body:   normalized,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// ShareLinks builds absolute candidate and results links on the client origin.
func (c *Client) ShareLinks(resp *CreateInterviewResponse) ShareLinks {
	if resp == nil {
		return ShareLinks{}
	}

	candidate := resp.InterviewURL
	if candidate == "" {
		candidate = "/interview/" + url.PathEscape(resp.ID)
	}

	results := resp.ResultsURL
	if results == "" {
		results = fmt.Sprintf("/results/%s?code=%s", url.PathEscape(resp.ID), url.QueryEscape(resp.AccessCode))
	}

	return ShareLinks{
		Candidate: c.originURL(candidate),
		Results:   c.originURL(results),
	}
}

// SplitSkills turns a comma separated list into trimmed, non-empty skills.
func SplitSkills(s string) []string {
	return cleanSkills(strings.Split(s, ","))
}

func cleanSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			cleaned = append(cleaned, skill)
		}
	}
	return cleaned
}

func interviewPath(id string) string {
	return fmt.Sprintf("%s/%s", apiInterviewsPath, url.PathEscape(id))
}
