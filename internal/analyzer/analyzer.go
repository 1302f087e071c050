package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"meeting-minutes-go/internal/record"
)

// participantPrefixLimit bounds the transcript prefix sent for
// participant identification; names are almost always mentioned early.
const participantPrefixLimit = 2000

const summaryPrompt = `You are an expert meeting analyst. Analyze the meeting transcript below and respond with a single JSON object, no surrounding prose, in this exact shape:

{
  "summary": "professional meeting minutes text covering: general info, purpose of the meeting, discussion, decisions, action items, open issues and follow-up",
  "decisions": ["each concrete decision that was made"],
  "discussion_points": ["each main topic that was discussed"],
  "open_issues": ["unresolved questions to follow up on"]
}

Use empty arrays when a category has no entries.

Meeting metadata:
%s
Transcript:
---
%s
---`

const actionItemsPrompt = `Analyze the meeting transcript below and extract every action item. For each one identify the task description, the responsible person, the deadline and a priority of high, medium or low.

Respond with a single JSON array, no surrounding prose:

[
  {"task": "...", "assignee": "...", "deadline": "...", "priority": "medium", "status": "pending"}
]

Use "unassigned" for unknown assignees and "none" for unknown deadlines.

Transcript:
---
%s
---`

const participantsPrompt = `Analyze the meeting transcript below and list every participant by name.

Respond with a single JSON array of names, no surrounding prose:

["First Person", "Second Person"]

Only include real names. Never include placeholder labels such as "Speaker 1" or "Speaker 2".

Transcript:
---
%s
---`

// Summarize asks the model for structured minutes: the summary text plus
// decisions, discussion points and open issues as explicit fields.
func (a *implAnalyzer) Summarize(ctx context.Context, transcript string, meta Meta) (*Summary, error) {
	prompt := fmt.Sprintf(summaryPrompt, formatMeta(meta), transcript)

	response, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, &AnalysisError{Op: "summarize", Err: err}
	}

	summary := parseSummaryResponse(response)
	if summary.Text == "" {
		return nil, &AnalysisError{Op: "summarize", Err: fmt.Errorf("model returned no summary text")}
	}

	a.logger.Debug(ctx, "Summary generated: %d characters, %d decisions",
		len(summary.Text), len(summary.Decisions))
	return summary, nil
}

// ExtractActionItems asks for a structured task list, falling back to
// line-based parsing when the model ignores the JSON instruction.
func (a *implAnalyzer) ExtractActionItems(ctx context.Context, transcript string) ([]record.ActionItem, error) {
	prompt := fmt.Sprintf(actionItemsPrompt, transcript)

	response, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, &AnalysisError{Op: "action_items", Err: err}
	}

	items := parseActionItems(response)
	a.logger.Debug(ctx, "Extracted %d action items", len(items))
	return items, nil
}

// IdentifyParticipants asks for a name list over a bounded transcript
// prefix. Placeholder speaker labels are always filtered out.
func (a *implAnalyzer) IdentifyParticipants(ctx context.Context, transcript string) ([]string, error) {
	transcript = truncateOnRuneBoundary(transcript, participantPrefixLimit)
	prompt := fmt.Sprintf(participantsPrompt, transcript)

	response, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, &AnalysisError{Op: "participants", Err: err}
	}

	participants := parseParticipants(response)
	a.logger.Debug(ctx, "Identified %d participants", len(participants))
	return participants, nil
}

// truncateOnRuneBoundary cuts s to at most limit bytes without
// splitting a multi-byte rune.
func truncateOnRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func formatMeta(meta Meta) string {
	var sb strings.Builder
	if meta.Title != "" {
		fmt.Fprintf(&sb, "- Title: %s\n", meta.Title)
	}
	if meta.Filename != "" {
		fmt.Fprintf(&sb, "- Source file: %s\n", meta.Filename)
	}
	if meta.Duration > 0 {
		fmt.Fprintf(&sb, "- Duration: %.0f seconds\n", meta.Duration)
	}
	return sb.String()
}
