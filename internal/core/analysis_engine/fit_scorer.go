package analysis_engine

import (
	"math"
	"strings"

	"github.com/resumepilot/resumepilot/internal/models"
)

// ScoreFit compares the candidate's extracted skills against the skills the
// job description implies. Without a job description the score is zero with
// empty sets. The score is the matched fraction of required skills on a
// 0-100 scale, rounded to one decimal.
func ScoreFit(cvSkills []string, jobDescription, jobTitle, company string) *models.AnalysisResult {
	result := &models.AnalysisResult{
		MatchedSkills:  []string{},
		MissingSkills:  []string{},
		JobDescription: jobDescription,
		JobTitle:       jobTitle,
		Company:        company,
	}

	if strings.TrimSpace(jobDescription) == "" {
		return result
	}

	required := MatchSkills(jobDescription)
	if len(required) == 0 {
		return result
	}

	cvSet := toSkillSet(cvSkills)
	for _, skill := range required {
		if cvSet[strings.ToLower(skill)] {
			result.MatchedSkills = append(result.MatchedSkills, skill)
		} else {
			result.MissingSkills = append(result.MissingSkills, skill)
		}
	}

	score := 100 * float64(len(result.MatchedSkills)) / float64(len(required))
	result.FitScore = clampScore(math.Round(score*10) / 10)
	return result
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
