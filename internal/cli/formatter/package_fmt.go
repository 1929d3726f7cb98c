package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mgrinnell/lectern/internal/domain"
)

// FormatPackageList renders a styled package listing inside a bordered
// box.
func FormatPackageList(pkgs []domain.ContentPackage) string {
	if len(pkgs) == 0 {
		return RenderBox("Content Packages", Dim("No packages found"))
	}

	headers := []string{"ID", "SUBJECT", "UNIT", "SUBSKILL", "STATUS", "COHERENCE", "CREATED"}
	rows := make([][]string, 0, len(pkgs))
	for i := range pkgs {
		p := &pkgs[i]
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Subject),
			StyleFg.Render(p.Unit),
			StyleFg.Render(p.Subskill),
			StatusPill(p.Status),
			CoherenceBadge(p.CoherenceScore()),
			Dim(HumanTimestamp(p.CreatedAt)),
		})
	}

	return RenderBox("Content Packages", RenderTable(headers, rows))
}

// FormatPackageDetail renders one package as a detail card.
func FormatPackageDetail(p *domain.ContentPackage) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Subject+" / "+p.Unit) + "\n")
	b.WriteString(Dim(p.Skill+" › "+p.Subskill) + "\n\n")

	pairs := [][2]string{
		{"ID", StyleFg.Render(p.ID)},
		{"STATUS", StatusPill(p.Status)},
		{"COMPONENTS", componentChecklist(p)},
		{"COHERENCE", CoherenceBadge(p.CoherenceScore())},
		{"CREATED", StyleFg.Render(HumanTimestamp(p.CreatedAt))},
		{"UPDATED", StyleFg.Render(HumanTimestamp(p.UpdatedAt))},
	}
	if p.Grade != "" {
		pairs = append(pairs, [2]string{"GRADE", StyleFg.Render(p.Grade)})
	}
	if p.ReviewedBy != "" {
		pairs = append(pairs, [2]string{"REVIEWED BY", StyleFg.Render(p.ReviewedBy)})
	}
	b.WriteString(RenderKeyValues(pairs))

	if len(p.ReviewNotes) > 0 {
		b.WriteString("\n" + Header("Review Notes") + "\n")
		b.WriteString(FormatReviewNotes(p.ReviewNotes))
	}

	return RenderBox("", b.String())
}

// FormatReviewNotes renders a review note history, newest last.
func FormatReviewNotes(notes []domain.ReviewNote) string {
	var b strings.Builder
	for _, n := range notes {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			StatusPill(n.Status),
			Dim(HumanTimestamp(n.Timestamp)),
			Dim("("+n.ReviewerID+")"),
		))
		b.WriteString("    " + StyleFg.Render(n.Note) + "\n")
	}
	return b.String()
}

// FormatComponentContent renders one embedded component payload. The
// payload shape is component-specific, so fields are listed
// alphabetically with scalar values inline.
func FormatComponentContent(ct domain.ComponentType, payload map[string]any) string {
	if len(payload) == 0 {
		return RenderBox(string(ct), Dim("No embedded content"))
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(StyleDim.Render(k) + "\n")
		switch v := payload[k].(type) {
		case string:
			b.WriteString("  " + StyleFg.Render(v) + "\n")
		case []any:
			for _, item := range v {
				b.WriteString("  " + StyleYellow.Render("•") + " " + StyleFg.Render(fmt.Sprint(item)) + "\n")
			}
		default:
			b.WriteString("  " + StyleFg.Render(fmt.Sprint(v)) + "\n")
		}
	}
	return RenderBox(string(ct), b.String())
}

func componentChecklist(p *domain.ContentPackage) string {
	parts := make([]string, 0, len(domain.AllComponentTypes))
	for _, ct := range domain.AllComponentTypes {
		if p.HasComponent(ct) {
			parts = append(parts, StyleGreen.Render("✔ "+string(ct)))
		} else {
			parts = append(parts, Dim("○ "+string(ct)))
		}
	}
	return strings.Join(parts, "  ")
}
