package usecase

import (
	"fmt"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

// Static fallbacks served whenever a generation operation cannot use the
// model. They are pure, never fail, and are deterministic except for the
// interpolated request fields.

// FallbackQuestions returns a generic five-question set personalized
// only by role name.
func FallbackQuestions(role string) []domain.Question {
	return []domain.Question{
		{
			Question:              fmt.Sprintf("Tell me about your experience with %s responsibilities.", role),
			KeyPoints:             []string{"Relevant experience", "Specific examples", "Impact and results"},
			SampleAnswerStructure: "Start with your most relevant experience, provide specific examples, and highlight measurable outcomes.",
		},
		{
			Question:              "Describe a challenging project you worked on. How did you overcome obstacles?",
			KeyPoints:             []string{"Problem-solving skills", "Teamwork", "Results achieved"},
			SampleAnswerStructure: "Use the STAR method: Situation, Task, Action, Result.",
		},
		{
			Question:              fmt.Sprintf("What technologies or tools are you most proficient in for %s?", role),
			KeyPoints:             []string{"Technical depth", "Practical experience", "Continuous learning"},
			SampleAnswerStructure: "List your strongest skills with examples of how you've used them.",
		},
		{
			Question:              "Where do you see yourself in 3-5 years in your career?",
			KeyPoints:             []string{"Career goals", "Alignment with role", "Growth mindset"},
			SampleAnswerStructure: "Discuss your career aspirations and how this role fits your path.",
		},
		{
			Question:              fmt.Sprintf("What interests you most about this %s position?", role),
			KeyPoints:             []string{"Research on company", "Genuine interest", "Value alignment"},
			SampleAnswerStructure: "Show you've researched the company and explain why you're excited.",
		},
	}
}

// FallbackRoadmap returns a three-module plan applicable to any role.
func FallbackRoadmap() domain.Roadmap {
	return domain.Roadmap{
		Modules: []domain.RoadmapModule{
			{
				Title:     "Fundamentals & Core Concepts",
				Timeline:  "4 weeks",
				Topics:    []string{"Basic principles", "Essential theory", "Industry standards"},
				Resources: []string{"Online tutorials", "Documentation", "Beginner courses"},
				Projects:  []string{"Build a basic portfolio project"},
			},
			{
				Title:     "Advanced Skills Development",
				Timeline:  "6 weeks",
				Topics:    []string{"Advanced techniques", "Best practices", "Design patterns"},
				Resources: []string{"Advanced courses", "Books", "Technical blogs"},
				Projects:  []string{"Intermediate complexity project"},
			},
			{
				Title:     "Practical Application",
				Timeline:  "8 weeks",
				Topics:    []string{"Real-world scenarios", "Problem-solving", "Optimization"},
				Resources: []string{"Practice platforms", "Code challenges", "Open source"},
				Projects:  []string{"Contribute to open source or build capstone project"},
			},
		},
	}
}

// FallbackResumeFeedback returns generic resume advice with a neutral
// passing score.
func FallbackResumeFeedback() domain.ResumeFeedback {
	return domain.ResumeFeedback{
		OverallScore: 70,
		Strengths: []string{
			"Resume structure is clear",
			"Contact information is provided",
			"Experience section is present",
		},
		Improvements: []string{
			"Add more quantifiable achievements",
			"Include relevant keywords",
			"Tailor resume to specific role",
		},
		Suggestions: []string{
			"Use action verbs to start bullet points",
			"Keep resume to 1-2 pages",
			"Proofread for errors",
		},
		MissingKeywords: []string{"Add role-specific technical skills"},
	}
}

// FallbackAnswerEvaluation returns a neutral evaluation with one
// feedback entry per evaluated answer, keeping the index alignment
// invariant intact.
func FallbackAnswerEvaluation(pairs int) domain.AnswerEvaluation {
	qf := make([]domain.QuestionFeedback, pairs)
	for i := range qf {
		qf[i] = domain.QuestionFeedback{
			Score:        6,
			GoodPoints:   []string{"Answer was provided"},
			Improvements: []string{"Add specific examples with measurable outcomes"},
			Tips:         []string{"Structure your answer with the STAR method"},
		}
	}
	return domain.AnswerEvaluation{
		OverallScore: 6,
		OverallFeedback: domain.FeedbackBlock{
			Strengths:    []string{"You completed every question in the interview"},
			Improvements: []string{"Quantify your impact where possible", "Tie answers back to the target role"},
			Tips:         []string{"Practice answering out loud", "Review the key points for each question"},
		},
		QuestionFeedback: qf,
	}
}
