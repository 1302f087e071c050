package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"meeting-minutes-go/internal/record"
)

const (
	fontName    = "Times New Roman"
	fontSize    = 11
	headingSize = 12
	titleSize   = 16
)

// Render writes the meeting minutes document: header, general info,
// content, decisions, action-item table and a closing/signature block.
func (r *implRenderer) Render(ctx context.Context, rec *record.MeetingRecord, filename string) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", &RenderError{Path: r.outputDir, Err: err}
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", &RenderError{Path: r.outputDir, Err: err}
	}

	r.addHeader(doc, rec)
	r.addGeneralInfo(doc, rec)
	r.addContent(doc, rec)
	r.addDecisions(doc, rec)
	r.addActionItems(doc, rec)
	r.addClosing(doc)

	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		title := strings.ReplaceAll(rec.Title, " ", "_")
		if title == "" {
			title = "meeting"
		}
		filename = fmt.Sprintf("minutes_%s_%s.docx", title, timestamp)
	}

	outputPath := filepath.Join(r.outputDir, filename)
	if err := doc.SaveTo(outputPath); err != nil {
		return "", &RenderError{Path: outputPath, Err: err}
	}

	r.logger.Info(ctx, "Meeting minutes document created: %s", outputPath)
	return outputPath, nil
}

func (r *implRenderer) addHeader(doc *docx.RootDoc, rec *record.MeetingRecord) {
	addStyledText(doc.AddParagraph(""), "MEETING MINUTES", true, titleSize)
	if rec.Title != "" {
		addStyledText(doc.AddParagraph(""), strings.ToUpper(rec.Title), true, 14)
	}
	doc.AddParagraph("")
}

func (r *implRenderer) addGeneralInfo(doc *docx.RootDoc, rec *record.MeetingRecord) {
	addStyledText(doc.AddParagraph(""), "I. GENERAL INFORMATION", true, headingSize)

	items := []string{
		fmt.Sprintf("- Date: %s", rec.CreatedAt.Format("02/01/2006 15:04")),
		fmt.Sprintf("- Duration: %s", formatDuration(rec.Duration)),
		fmt.Sprintf("- Source: %s", rec.Filename),
	}
	if len(rec.Participants) > 0 {
		items = append(items, fmt.Sprintf("- Participants: %s", strings.Join(rec.Participants, ", ")))
	} else {
		items = append(items, "- Participants: [to be completed]")
	}

	for _, item := range items {
		addStyledText(doc.AddParagraph(""), item, false, fontSize)
	}
	doc.AddParagraph("")
}

func (r *implRenderer) addContent(doc *docx.RootDoc, rec *record.MeetingRecord) {
	addStyledText(doc.AddParagraph(""), "II. MEETING CONTENT", true, headingSize)

	switch {
	case rec.Summary != "":
		for _, line := range strings.Split(rec.Summary, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			addStyledText(doc.AddParagraph(""), line, false, fontSize)
		}
	case rec.Transcript != "":
		addStyledText(doc.AddParagraph(""), "Automatically transcribed meeting content:", false, fontSize)
		preview := rec.Transcript
		if len(preview) > 2000 {
			preview = preview[:2000] + "..."
		}
		addStyledText(doc.AddParagraph(""), preview, false, 10)
	default:
		addStyledText(doc.AddParagraph(""), "No content available.", false, fontSize)
	}
	doc.AddParagraph("")
}

func (r *implRenderer) addDecisions(doc *docx.RootDoc, rec *record.MeetingRecord) {
	addStyledText(doc.AddParagraph(""), "III. DECISIONS", true, headingSize)

	if len(rec.Decisions) == 0 {
		addStyledText(doc.AddParagraph(""), "No specific decisions were made in this meeting.", false, fontSize)
	} else {
		for i, decision := range rec.Decisions {
			addStyledText(doc.AddParagraph(""), fmt.Sprintf("%d. %s", i+1, decision), false, fontSize)
		}
	}
	doc.AddParagraph("")
}

func (r *implRenderer) addActionItems(doc *docx.RootDoc, rec *record.MeetingRecord) {
	addStyledText(doc.AddParagraph(""), "IV. ACTION ITEMS", true, headingSize)

	if len(rec.ActionItems) == 0 {
		addStyledText(doc.AddParagraph(""), "No specific tasks were assigned in this meeting.", false, fontSize)
		doc.AddParagraph("")
		return
	}

	table := doc.AddTable()
	table.Style("LightList-Accent1")

	hdr := table.AddRow()
	for _, h := range []string{"No.", "Task", "Assignee", "Deadline", "Priority"} {
		hdr.AddCell().AddParagraph(h)
	}

	for i, item := range rec.ActionItems {
		row := table.AddRow()
		row.AddCell().AddParagraph(fmt.Sprintf("%d", i+1))
		row.AddCell().AddParagraph(item.Task)
		row.AddCell().AddParagraph(item.Assignee)
		row.AddCell().AddParagraph(item.Deadline)
		row.AddCell().AddParagraph(item.Priority)
	}
	doc.AddParagraph("")
}

func (r *implRenderer) addClosing(doc *docx.RootDoc) {
	addStyledText(doc.AddParagraph(""), "V. CLOSING", true, headingSize)
	addStyledText(doc.AddParagraph(""),
		fmt.Sprintf("These minutes were generated at %s.", time.Now().Format("15:04 on 02/01/2006")),
		false, fontSize)

	doc.AddParagraph("")
	doc.AddParagraph("")

	table := doc.AddTable()
	left := []string{"MINUTES TAKER", "(signature)", "[name]"}
	right := []string{"CHAIRPERSON", "(signature)", "[name]"}
	for i := range left {
		row := table.AddRow()
		row.AddCell().AddParagraph(left[i])
		row.AddCell().AddParagraph(right[i])
	}
}

func addStyledText(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
