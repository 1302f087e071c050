package analyzer

import (
	"encoding/json"
	"regexp"
	"strings"

	"meeting-minutes-go/internal/record"
)

var reSpeakerLabel = regexp.MustCompile(`(?i)^speaker\s*\d+$`)

// parseSummaryResponse decodes the structured summary JSON. When the
// model's output deviates from the expected shape the raw text becomes
// the summary and the structured lists stay empty.
func parseSummaryResponse(response string) *Summary {
	var summary Summary
	if raw := jsonObject(response); raw != "" {
		if err := json.Unmarshal([]byte(raw), &summary); err == nil && summary.Text != "" {
			return &summary
		}
	}
	return &Summary{Text: strings.TrimSpace(response)}
}

// parseActionItems decodes the structured task list, falling back to
// treating each bullet line as a task with unknown assignee/deadline and
// medium priority.
func parseActionItems(response string) []record.ActionItem {
	if raw := jsonArray(response); raw != "" {
		var items []record.ActionItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			for i := range items {
				if items[i].Status == "" {
					items[i].Status = "pending"
				}
			}
			return items
		}
	}
	return actionItemsFromText(response)
}

func actionItemsFromText(text string) []record.ActionItem {
	var items []record.ActionItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•") && !strings.HasPrefix(line, "*") {
			continue
		}
		task := strings.TrimSpace(strings.TrimLeft(line, "-•*"))
		if task == "" {
			continue
		}
		items = append(items, record.ActionItem{
			Task:     task,
			Assignee: "unassigned",
			Deadline: "none",
			Priority: "medium",
			Status:   "pending",
		})
	}
	return items
}

// parseParticipants decodes the name list, falling back to line-based
// parsing. Placeholder speaker labels never make it into the result.
func parseParticipants(response string) []string {
	var names []string
	if raw := jsonArray(response); raw != "" {
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			names = nil
		}
	}
	if names == nil {
		names = participantsFromText(response)
	}

	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || reSpeakerLabel.MatchString(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func participantsFromText(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "]") {
			continue
		}
		name := strings.Trim(line, `"',-• `)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// jsonObject returns the outermost {...} substring, tolerating prose or
// markdown fences around the model's JSON.
func jsonObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// jsonArray returns the outermost [...] substring.
func jsonArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
