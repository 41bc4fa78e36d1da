package dictapimodels

import (
	dbmodels "kaizen-tools-backend/models/db"
)

type DepartmentView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:          rec.ID,
		Name:        rec.Name,
		DisplayName: rec.DisplayName,
	}
}

type EvaluationQuestionView struct {
	Key        string `json:"key"`
	Text       string `json:"text"`
	IsRequired bool   `json:"is_required"`
	Order      int    `json:"order"`
}

func EvaluationQuestionConvert(rec dbmodels.EvaluationQuestion) EvaluationQuestionView {
	return EvaluationQuestionView{
		Key:        rec.Key,
		Text:       rec.Text,
		IsRequired: rec.IsRequired,
		Order:      rec.Order,
	}
}
