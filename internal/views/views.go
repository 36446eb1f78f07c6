package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
)

// EmptyResultsMessage is shown instead of a candidate table when nobody has
// submitted answers yet.
const EmptyResultsMessage = "No candidates have completed this interview yet. Share the interview link to start collecting answers."

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	bad     = color.New(color.FgRed)
	faint   = color.New(color.Faint)
)

// RenderCreated shows what a recruiter needs after creating an interview.
func RenderCreated(w io.Writer, resp *interviewer.CreateInterviewResponse, links interviewer.ShareLinks) {
	good.Fprintln(w, "Interview created")
	fmt.Fprintf(w, "Interview ID:  %s\n", resp.ID)
	fmt.Fprintf(w, "Access code:   %s\n", resp.AccessCode)
	fmt.Fprintf(w, "Candidate link: %s\n", links.Candidate)
	fmt.Fprintf(w, "Results link:   %s\n", links.Results)

	if len(resp.Questions) == 0 {
		return
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "Generated questions")
	renderQuestions(w, resp.Questions, true)
}

// RenderInterview shows the candidate-facing interview.
func RenderInterview(w io.Writer, interview *interviewer.Interview) {
	heading.Fprintln(w, interview.JobTitle)
	renderQuestions(w, interview.Questions, false)
}

func renderQuestions(w io.Writer, questions []interviewer.Question, withFocus bool) {
	for i, q := range questions {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Text)
		if withFocus && q.ExpectedFocus != "" {
			faint.Fprintf(w, "   Focus: %s\n", q.ExpectedFocus)
		}
	}
}

// RenderResults shows the summary and the scored candidates. With details set
// every candidate is followed by per-question scores, comments and answers.
func RenderResults(w io.Writer, results *interviewer.Results, details bool) {
	heading.Fprintln(w, results.Interview.JobTitle)
	if results.Interview.CreatedAt != "" {
		faint.Fprintf(w, "Created %s\n", results.Interview.CreatedAt)
	}
	fmt.Fprintln(w)

	s := results.Summary
	fmt.Fprintf(w, "Total candidates: %d   ", s.Total)
	good.Fprintf(w, "Recommended: %d   ", s.Recommended)
	warn.Fprintf(w, "Maybe: %d   ", s.Maybe)
	bad.Fprintf(w, "Not recommended: %d\n\n", s.NotRecommended)

	if s.Total == 0 || len(results.Submissions) == 0 {
		if u := results.Unfiltered; u != nil && u.Total > 0 {
			faint.Fprintf(w, "No submissions match the filters (%d total).\n", u.Total)
			return
		}
		faint.Fprintln(w, EmptyResultsMessage)
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Candidate", "Email", "Score", "Recommendation", "Submitted"})
	table.SetAutoWrapText(false)

	for i, sub := range results.Submissions {
		table.Append([]string{
			strconv.Itoa(i + 1),
			sub.CandidateName,
			sub.CandidateEmail,
			FormatScore(sub.OverallScore),
			RecommendationLabel(sub.Recommendation),
			sub.SubmittedAt,
		})
	}
	table.Render()

	if !details {
		return
	}

	for _, sub := range results.Submissions {
		fmt.Fprintln(w)
		renderSubmission(w, results.Interview.Questions, sub)
	}
}

func renderSubmission(w io.Writer, questions []interviewer.Question, sub *interviewer.Submission) {
	heading.Fprintf(w, "%s <%s>  %s  %s\n", sub.CandidateName, sub.CandidateEmail,
		FormatScore(sub.OverallScore), RecommendationLabel(sub.Recommendation))

	if sub.AISummary != "" {
		fmt.Fprintf(w, "AI summary: %s\n", sub.AISummary)
	}

	for i, q := range questions {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, q.Text)
		if score := sub.ScoreFor(q.ID); score != nil {
			fmt.Fprintf(w, "   Score: %s/5\n", strconv.FormatFloat(score.Score, 'f', -1, 64))
			if score.Comment != "" {
				faint.Fprintf(w, "   AI: %s\n", score.Comment)
			}
		}
		if answer := sub.AnswerFor(q.ID); answer != "" {
			fmt.Fprintf(w, "   Answer: %s\n", indent(answer, "           "))
		}
	}
}

// RenderBalance shows how many interviews the device can still create.
func RenderBalance(w io.Writer, balance *interviewer.TokenBalance) {
	fmt.Fprintf(w, "Interviews available: %d\n", balance.Balance)
	fmt.Fprintf(w, "Free trials left:     %d\n", balance.FreeTrialsRemaining)
	if balance.Balance == 0 && balance.FreeTrialsRemaining == 0 {
		warn.Fprintln(w, "No interviews remaining. Run `ai-interviewer pricing` to buy more.")
	}
}

// RenderPlans lists the purchasable plans.
func RenderPlans(w io.Writer, plans []interviewer.Plan) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Plan", "Interviews", "Price", ""})
	for _, p := range plans {
		mark := ""
		if p.Popular {
			mark = "popular"
		}
		table.Append([]string{p.ID, strconv.Itoa(p.Interviews), p.Price(), mark})
	}
	table.Render()
}

// FormatScore renders an overall score with one decimal.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

func RecommendationLabel(r interviewer.Recommendation) string {
	switch r {
	case interviewer.Recommend:
		return "Recommend"
	case interviewer.Maybe:
		return "Maybe"
	case interviewer.NotRecommended:
		return "Not recommended"
	case "":
		return "-"
	default:
		return strings.ReplaceAll(string(r), "_", " ")
	}
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}
