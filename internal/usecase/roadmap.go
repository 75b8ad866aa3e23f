package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/fairyhunter13/ai-interview-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/pkg/jsonx"
	"github.com/fairyhunter13/ai-interview-coach/pkg/textx"
)

const roadmapPromptFmt = `Create a comprehensive learning roadmap for a %s level professional
targeting a %s position%s.

Provide a structured learning path with:
1. Module name/title
2. Estimated weeks to complete
3. Key topics to cover
4. Recommended resources (online courses, books, practice platforms)
5. Practice project ideas

Format as JSON array with objects: title, weeks, topics (array), resources (array), projects (array)
Provide 5-7 modules.`

// ExperienceLevelForYears maps years of experience onto the level names
// used in prompts: <3 entry, <5 mid, else senior.
func ExperienceLevelForYears(years int) string {
	switch {
	case years < 3:
		return domain.LevelEntry
	case years < 5:
		return domain.LevelMid
	default:
		return domain.LevelSenior
	}
}

// GenerateRoadmap produces a personalized learning roadmap. It never
// fails: any model-facing error degrades to the deterministic fallback.
func (s *CoachService) GenerateRoadmap(ctx domain.Context, req domain.RoadmapRequest) domain.Roadmap {
	const op = "roadmap"
	skillsClause := ""
	if joined := textx.JoinNonEmpty(req.TargetSkills, ", "); joined != "" {
		skillsClause = " focusing on " + joined
	}
	level := ExperienceLevelForYears(req.ExperienceYears)
	prompt := fmt.Sprintf(roadmapPromptFmt, level, req.JobRole, skillsClause)

	raw, err := s.complete(ctx, op, s.personas.Roadmap, prompt, maxTokensRoadmap)
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackRoadmap()
	}
	rm, err := repairRoadmap(raw)
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackRoadmap()
	}
	observability.ObserveGeneration(op, "model")
	return rm
}

// rawRoadmapModule tolerates the alternate numeric field the model may
// emit in place of timeline.
type rawRoadmapModule struct {
	Title     string   `json:"title"`
	Timeline  string   `json:"timeline"`
	Weeks     *float64 `json:"weeks"`
	Topics    []string `json:"topics"`
	Resources []string `json:"resources"`
	Projects  []string `json:"projects"`
}

// repairRoadmap coerces raw model output into the roadmap schema. Both a
// bare module array and a {"modules": [...]} wrapper are accepted, and
// any "weeks" value is folded into timeline before the module is valid.
func repairRoadmap(raw string) (domain.Roadmap, error) {
	payload, err := jsonx.Extract(raw)
	if err != nil {
		return domain.Roadmap{}, domain.ErrUnparsable
	}
	var items []rawRoadmapModule
	if err := json.Unmarshal(payload, &items); err != nil {
		var wrapped struct {
			Modules []rawRoadmapModule `json:"modules"`
		}
		if err := json.Unmarshal(payload, &wrapped); err != nil {
			return domain.Roadmap{}, fmt.Errorf("%w: neither array nor modules object", domain.ErrShapeInvalid)
		}
		items = wrapped.Modules
	}
	if len(items) == 0 {
		return domain.Roadmap{}, fmt.Errorf("%w: empty module list", domain.ErrShapeInvalid)
	}
	modules := make([]domain.RoadmapModule, 0, len(items))
	for i, m := range items {
		if m.Title == "" {
			return domain.Roadmap{}, fmt.Errorf("%w: module %d missing title", domain.ErrShapeInvalid, i)
		}
		timeline := m.Timeline
		if m.Weeks != nil {
			timeline = formatWeeks(*m.Weeks)
		}
		modules = append(modules, domain.RoadmapModule{
			Title:     m.Title,
			Timeline:  timeline,
			Topics:    m.Topics,
			Resources: m.Resources,
			Projects:  m.Projects,
		})
	}
	return domain.Roadmap{Modules: modules}, nil
}

func formatWeeks(weeks float64) string {
	if weeks == math.Trunc(weeks) {
		return fmt.Sprintf("%d weeks", int(weeks))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", weeks), "0"), ".") + " weeks"
}
