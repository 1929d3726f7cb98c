package formatter

import (
	"fmt"
	"strings"

	"github.com/mgrinnell/lectern/internal/domain"
)

// FormatCurriculumStatus renders the service's curriculum load state.
func FormatCurriculumStatus(status *domain.CurriculumStatus) string {
	var b strings.Builder
	if !status.Loaded {
		b.WriteString(StyleYellow.Render("No curriculum data loaded") + "\n")
		return RenderBox("Curriculum", b.String())
	}

	pairs := [][2]string{
		{"SUBJECTS", StyleFg.Render(fmt.Sprintf("%d", status.SubjectCount))},
		{"SUBSKILLS", StyleFg.Render(fmt.Sprintf("%d", status.SubskillCount))},
	}
	b.WriteString(RenderKeyValues(pairs))
	if len(status.Subjects) > 0 {
		b.WriteString("\n  " + StylePurple.Render(strings.Join(status.Subjects, ", ")) + "\n")
	}
	return RenderBox("Curriculum", b.String())
}

// FormatCurriculumTree renders curriculum trees as unit › skill ›
// subskill hierarchies with difficulty badges.
func FormatCurriculumTree(curricula []domain.Curriculum) string {
	if len(curricula) == 0 {
		return RenderBox("Curriculum", Dim("No curriculum data for that scope"))
	}

	var b strings.Builder
	for ci, c := range curricula {
		if ci > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleBold.Render(c.Subject) + " " + Dim("(grade "+c.Grade+")") + "\n")
		b.WriteString(RenderTree(curriculumTreeItems(c)))
	}
	return RenderBox("Curriculum", b.String())
}

func curriculumTreeItems(c domain.Curriculum) []TreeItem {
	var items []TreeItem
	for ui, u := range c.Units {
		lastUnit := ui == len(c.Units)-1
		items = append(items, TreeItem{
			Title:  StyleHeader.Render(u.UnitTitle),
			Level:  1,
			IsLast: lastUnit && len(u.Skills) == 0,
		})
		for si, s := range u.Skills {
			lastSkill := si == len(u.Skills)-1
			items = append(items, TreeItem{
				Title:  StyleFg.Render(s.SkillDescription),
				Level:  2,
				IsLast: lastSkill && len(s.Subskills) == 0,
			})
			for bi, sub := range s.Subskills {
				items = append(items, TreeItem{
					Title:  Dim(sub.SubskillID) + " " + StyleFg.Render(sub.SubskillDescription),
					Level:  3,
					IsLast: bi == len(s.Subskills)-1,
					Detail: string(sub.DifficultyLevel()),
				})
			}
		}
	}
	return items
}

// FormatSubskillContext renders the generation pre-fill context for a
// subskill.
func FormatSubskillContext(sc *domain.SubskillContext) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(sc.SubskillDescription) + "\n\n")
	pairs := [][2]string{
		{"ID", StyleFg.Render(sc.SubskillID)},
		{"SUBJECT", StyleFg.Render(sc.Subject)},
		{"GRADE", StyleFg.Render(sc.Grade)},
		{"UNIT", StyleFg.Render(sc.Unit)},
		{"SKILL", StyleFg.Render(sc.Skill)},
		{"DIFFICULTY", StylePurple.Render(sc.DifficultyLevel)},
		{"TARGET", StyleFg.Render(fmt.Sprintf("%.1f", sc.TargetDifficulty))},
	}
	b.WriteString(RenderKeyValues(pairs))

	if len(sc.Prerequisites) > 0 {
		b.WriteString("\n" + Header("Prerequisites") + "\n")
		for _, p := range sc.Prerequisites {
			b.WriteString("  " + StyleYellow.Render("•") + " " + StyleFg.Render(p) + "\n")
		}
	}
	if len(sc.LearningPath) > 0 {
		b.WriteString("\n" + Header("Learning Path") + "\n")
		for _, step := range sc.LearningPath {
			marker := StyleDim.Render("→")
			if step == sc.SubskillID {
				marker = StyleGreen.Render("▶")
			}
			b.WriteString("  " + marker + " " + StyleFg.Render(step) + "\n")
		}
	}

	return RenderBox("Subskill Context", b.String())
}
