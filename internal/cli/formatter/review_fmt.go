package formatter

import (
	"fmt"
	"strings"

	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/service"
)

// FormatReviewQueue renders the review queue listing.
func FormatReviewQueue(pkgs []domain.ContentPackage) string {
	if len(pkgs) == 0 {
		return RenderBox("Review Queue", Dim("Nothing waiting for review"))
	}

	headers := []string{"ID", "SUBJECT", "UNIT", "STATUS", "COHERENCE", "UPDATED"}
	rows := make([][]string, 0, len(pkgs))
	for i := range pkgs {
		p := &pkgs[i]
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Subject),
			StyleFg.Render(p.Unit),
			StatusPill(p.Status),
			CoherenceBadge(p.CoherenceScore()),
			Dim(HumanTimestamp(p.UpdatedAt)),
		})
	}

	title := fmt.Sprintf("Review Queue (%d)", len(pkgs))
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatDecision renders the outcome of a review decision. The status
// line shows what the server actually did.
func FormatDecision(result *service.DecisionResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s %s %s\n",
		Bold(result.PackageID),
		StatusPill(result.OldStatus),
		Dim("→"),
		StatusPill(result.NewStatus),
	))
	if result.Message != "" {
		b.WriteString(Dim(result.Message) + "\n")
	}
	return b.String()
}

// FormatReviewInfo renders the review-side view of a package.
func FormatReviewInfo(info *domain.ReviewInfo) string {
	var b strings.Builder

	pairs := [][2]string{
		{"PACKAGE", StyleFg.Render(info.PackageID)},
		{"STATUS", StatusPill(info.Status)},
	}
	if info.ReviewedBy != "" {
		pairs = append(pairs, [2]string{"REVIEWED BY", StyleFg.Render(info.ReviewedBy)})
	}
	if info.ReviewedAt != nil {
		pairs = append(pairs, [2]string{"REVIEWED", StyleFg.Render(HumanTimestamp(*info.ReviewedAt))})
	}
	b.WriteString(RenderKeyValues(pairs))

	if len(info.ReviewHistory) > 0 {
		b.WriteString("\n" + Header("Review History") + "\n")
		b.WriteString(FormatReviewNotes(info.ReviewHistory))
	}
	if len(info.Revisions) > 0 {
		b.WriteString("\n" + Header("Revisions") + "\n")
		b.WriteString(FormatRevisionEntries(info.Revisions))
	}

	return RenderBox("Review Info", b.String())
}

// FormatRevisionEntries renders a package's revision history.
func FormatRevisionEntries(entries []domain.RevisionEntry) string {
	if len(entries) == 0 {
		return Dim("  No revisions yet") + "\n"
	}

	var b strings.Builder
	for _, e := range entries {
		components := make([]string, 0, len(e.ComponentsRevised))
		for _, ct := range e.ComponentsRevised {
			components = append(components, string(ct))
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s %s\n",
			revisionStateBadge(e.Status),
			Dim(HumanTimestamp(e.Timestamp)),
			StylePurple.Render(strings.Join(components, ", ")),
			Dim("("+e.RevisionID+")"),
		))
		if e.FeedbackSummary != "" {
			b.WriteString("    " + StyleFg.Render(e.FeedbackSummary) + "\n")
		}
	}
	return b.String()
}

// FormatActionLog renders locally recorded review actions.
func FormatActionLog(actions []*domain.ReviewAction) string {
	if len(actions) == 0 {
		return RenderBox("Review Log", Dim("No recorded decisions"))
	}

	headers := []string{"WHEN", "PACKAGE", "ACTION", "STATUS", "REVIEWER"}
	rows := make([][]string, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, []string{
			Dim(HumanTimestamp(a.CreatedAt)),
			TruncID(a.PackageID),
			StyleFg.Render(a.Action),
			StatusPill(a.NewStatus),
			Dim(a.ReviewerID),
		})
	}
	return RenderBox("Review Log", RenderTable(headers, rows))
}

// FormatDrafts renders unsent review drafts.
func FormatDrafts(drafts []*domain.ReviewDraft) string {
	if len(drafts) == 0 {
		return RenderBox("Review Drafts", Dim("No pending drafts"))
	}

	headers := []string{"PACKAGE", "TARGET", "NOTES", "UPDATED"}
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		notes := d.Notes
		if len(notes) > 40 {
			notes = notes[:39] + "…"
		}
		rows = append(rows, []string{
			TruncID(d.PackageID),
			StatusPill(d.TargetStatus),
			StyleFg.Render(notes),
			Dim(HumanTimestamp(d.UpdatedAt)),
		})
	}
	return RenderBox("Review Drafts", RenderTable(headers, rows))
}

func revisionStateBadge(state domain.RevisionState) string {
	switch state {
	case domain.RevisionCompleted:
		return StyleGreen.Render("✔")
	case domain.RevisionInProgress:
		return StyleYellow.Render("◐")
	case domain.RevisionFailed:
		return StyleRed.Render("✖")
	default:
		return StyleDim.Render("?")
	}
}
