package problem_service

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
)

const defaultCacheSize = 256

var (
	// used for conversion of db error codes to user understandable messages
	errMsgs = map[string]map[string]string{}
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ProblemService is the read side of the curriculum. Problems are authored
// elsewhere and never change while being evaluated, so they are cached.
type ProblemService struct {
	DB database.Querier

	cache     *lru.Cache[int32, Problem]
	logger    *logrus.Entry
	startOnce sync.Once
}

type ResearchMetadata struct {
	Topics              []string `json:"topics,omitempty"`
	LearningObjectives  []string `json:"learning_objectives,omitempty"`
	ProfessionalContext string   `json:"professional_context,omitempty"`
	Category            string   `json:"category,omitempty"`
}

type Problem struct {
	ID          int32                         `json:"id"`
	LessonID    int32                         `json:"lesson_id"`
	Title       string                        `json:"title"`
	Description string                        `json:"description"`
	Difficulty  Difficulty                    `json:"difficulty"`
	Position    int32                         `json:"position"`
	StarterCode string                        `json:"starter_code"`
	Solution    string                        `json:"solution,omitempty"`
	TestCases   []evaluation_service.TestCase `json:"test_cases"`
	Hints       []string                      `json:"hints"`
	XPReward    int32                         `json:"xp_reward"`
	ContentRule evaluation_service.RuleID     `json:"content_rule"`
	Research    *ResearchMetadata             `json:"research,omitempty"`
	CreatedAt   time.Time                     `json:"created_at"`
}

type Lesson struct {
	ID          int32  `json:"id"`
	SectionID   int32  `json:"section_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int32  `json:"position"`
}

type Section struct {
	ID          int32    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Position    int32    `json:"position"`
	Lessons     []Lesson `json:"lessons"`
}

type HintsResponse struct {
	ProblemID  int32    `json:"problem_id"`
	Hints      []string `json:"hints"`
	TotalHints int      `json:"total_hints"`
}
