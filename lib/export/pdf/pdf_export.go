package pdfexport

import (
	"bytes"
	"fmt"

	approvalapimodels "kaizen-tools-backend/models/api/approval"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateRequestCard формирует карточку заявки с историей решений
func GenerateRequestCard(rec dbmodels.KaizenRequest, trail approvalapimodels.ApprovalTrailView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateRequestCard panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, fmt.Sprintf("Заявка %v", rec.RequestID), "", "L", false)
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 6, rec.Title, "", "L", false)
	pdf.Ln(4)

	writeAttr(pdf, "Статус", rec.Status.ToHuman())
	if rec.Department != nil {
		writeAttr(pdf, "Подразделение", rec.Department.DisplayName)
	}
	if rec.Initiator != nil {
		writeAttr(pdf, "Инициатор", rec.Initiator.FullName())
	}
	writeAttr(pdf, "Программа", rec.Program)
	writeAttr(pdf, "Участок", rec.StationName)
	writeAttr(pdf, "Оценка стоимости", fmt.Sprintf("%.2f %v", rec.CostEstimate, rec.CostCurrency))
	if !rec.DateOfOrigination.IsZero() {
		writeAttr(pdf, "Дата возникновения", rec.DateOfOrigination.Format("02.01.2006"))
	}
	writeAttr(pdf, "Описание проблемы", rec.IssueDescription)
	if rec.PokaYokeDescription != "" {
		writeAttr(pdf, "Пока-ёкэ", rec.PokaYokeDescription)
	}
	if rec.Status.IsTerminal() && rec.RejectionReason != "" {
		writeAttr(pdf, "Причина отклонения", rec.RejectionReason)
		writeAttr(pdf, "Отклонено", rec.RejectedByDepartment)
	}

	writeSection(pdf, "Решения менеджеров")
	for _, item := range trail.ManagerApprovals {
		writeDecision(pdf, item)
	}
	writeSection(pdf, "Решения руководителей")
	for _, item := range trail.HodApprovals {
		writeDecision(pdf, item)
	}
	if trail.AgmApproval != nil {
		writeSection(pdf, "Решение заместителя генерального директора")
		writeSingleDecision(pdf, *trail.AgmApproval)
	}
	if trail.GmApproval != nil {
		writeSection(pdf, "Решение генерального директора")
		writeSingleDecision(pdf, *trail.GmApproval)
	}
	if len(trail.Evaluations) != 0 {
		writeSection(pdf, "Оценка рисков")
		for _, item := range trail.Evaluations {
			pdf.MultiCell(0, 6, fmt.Sprintf("%v (%v): %v", item.DepartmentName, item.EvaluatorRole, item.OverallRisk), "", "L", false)
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAttr(pdf *fpdf.Fpdf, name, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.MultiCell(0, 6, name+":", "", "L", false)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, value, "", "L", false)
	pdf.Ln(1)
}

func writeSection(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 13)
	pdf.MultiCell(0, 7, title, "", "L", false)
	pdf.SetFont("Arial", "", 11)
}

func writeDecision(pdf *fpdf.Fpdf, item approvalapimodels.DepartmentDecisionView) {
	line := fmt.Sprintf("%v - %v (%v)", item.DepartmentName, item.Decision, item.ActorName)
	if item.Remarks != "" {
		line += ": " + item.Remarks
	}
	pdf.MultiCell(0, 6, line, "", "L", false)
}

func writeSingleDecision(pdf *fpdf.Fpdf, item approvalapimodels.SingleDecisionView) {
	decision := "Согласовано"
	if !item.Approved {
		decision = "Отклонено"
	}
	line := fmt.Sprintf("%v - %v", decision, item.ActorName)
	if item.Comments != "" {
		line += ": " + item.Comments
	}
	pdf.MultiCell(0, 6, line, "", "L", false)
}
