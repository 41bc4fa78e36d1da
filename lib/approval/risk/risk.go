package risk

import (
	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"
)

// Calculate вычисляет итоговый риск оценки подразделения по ответам анкеты:
// пустая анкета - LOW, хотя бы один HIGH - HIGH, от двух MEDIUM - MEDIUM, иначе LOW
func Calculate(answers dbmodels.EvaluationAnswers) models.RiskLevel {
	if len(answers) == 0 {
		return models.RiskLow
	}
	mediumCount := 0
	for _, answer := range answers {
		switch answer.RiskLevel {
		case models.RiskHigh:
			return models.RiskHigh
		case models.RiskMedium:
			mediumCount++
		}
	}
	if mediumCount >= 2 {
		return models.RiskMedium
	}
	return models.RiskLow
}
