package problem_service

import (
	"context"

	"github.com/tcp_snm/quest/internal/quest_errors"
)

// GetCurriculum returns every section with its lessons, both in position order
func (p *ProblemService) GetCurriculum(ctx context.Context) ([]Section, error) {
	dbSections, err := p.DB.ListSections(ctx)
	if err != nil {
		return nil, quest_errors.HandleDBErrors(err, errMsgs, "cannot fetch sections")
	}

	dbLessons, err := p.DB.ListLessons(ctx)
	if err != nil {
		return nil, quest_errors.HandleDBErrors(err, errMsgs, "cannot fetch lessons")
	}

	// lessons come sorted by (section_id, position)
	lessonsBySection := make(map[int32][]Lesson, len(dbSections))
	for _, l := range dbLessons {
		lessonsBySection[l.SectionID] = append(lessonsBySection[l.SectionID], Lesson{
			ID:          l.ID,
			SectionID:   l.SectionID,
			Title:       l.Title,
			Description: l.Description,
			Position:    l.Position,
		})
	}

	sections := make([]Section, 0, len(dbSections))
	for _, s := range dbSections {
		lessons := lessonsBySection[s.ID]
		if lessons == nil {
			lessons = []Lesson{}
		}
		sections = append(sections, Section{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Position:    s.Position,
			Lessons:     lessons,
		})
	}

	return sections, nil
}
