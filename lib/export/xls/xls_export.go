package xlsexport

import (
	"bytes"
	"fmt"

	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportKaizenRegister(list []dbmodels.KaizenRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var registerHeaders = []string{
	"Номер",
	"Название",
	"Подразделение",
	"Инициатор",
	"Программа",
	"Участок",
	"Оценка стоимости",
	"Статус",
	"Этап",
	"Отклонил",
	"Причина отклонения",
	"Дата создания",
}

func (i impl) ExportKaizenRegister(list []dbmodels.KaizenRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, registerHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		err = writeRegisterData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeRegisterData(f *excelize.File, sheet string, list []dbmodels.KaizenRequest, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(registerHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		departmentName := ""
		if item.Department != nil {
			departmentName = item.Department.DisplayName
		}
		initiatorName := ""
		if item.Initiator != nil {
			initiatorName = item.Initiator.FullName()
		}
		rejectedBy := ""
		if item.RejectedBy != nil {
			rejectedBy = fmt.Sprintf("%v (%v)", item.RejectedBy.FullName(), item.RejectedByDepartment)
		}
		values := []interface{}{
			item.RequestID,
			item.Title,
			departmentName,
			initiatorName,
			item.Program,
			item.StationName,
			fmt.Sprintf("%.2f %v", item.CostEstimate, item.CostCurrency),
			item.Status.ToHuman(),
			string(item.CurrentStage),
			rejectedBy,
			item.RejectionReason,
			item.CreatedAt.Format("02.01.2006"),
		}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}
