package xlsexport

import (
	"testing"
	"time"

	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportKaizenRegister(t *testing.T) {
	handler := impl{}
	list := []dbmodels.KaizenRequest{
		{
			BaseModel:    dbmodels.BaseModel{ID: "rec-1", CreatedAt: time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)},
			RequestID:    "KZ-2026-001",
			Title:        "Защита от перекоса клеммы",
			Program:      "X90",
			StationName:  "ST-14",
			CostEstimate: 12500.5,
			CostCurrency: "RUB",
			Status:       models.StatusApproved,
			CurrentStage: models.StageCompleted,
			Department:   &dbmodels.Department{DisplayName: "Сборка"},
			Initiator:    &dbmodels.User{FirstName: "Иван", LastName: "Петров"},
		},
		{
			BaseModel:            dbmodels.BaseModel{ID: "rec-2", CreatedAt: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)},
			RequestID:            "KZ-2026-002",
			Title:                "Датчик наличия прокладки",
			Program:              "X90",
			StationName:          "ST-02",
			Status:               models.StatusRejected,
			CurrentStage:         models.StageOwnHod,
			RejectionReason:      "не окупается",
			RejectedBy:           &dbmodels.User{FirstName: "Петр", LastName: "Сидоров"},
			RejectedByDepartment: "Сборка",
		},
	}

	buf, err := handler.ExportKaizenRegister(list)
	require.Nil(t, err)
	require.NotNil(t, buf)

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer func() {
		require.Nil(t, f.Close())
	}()

	sheet := "Заявки"
	checkCell := func(cell, expected string) {
		value, err := f.GetCellValue(sheet, cell)
		require.Nil(t, err)
		require.Equal(t, expected, value)
	}
	checkCell("A1", "Номер")
	checkCell("A2", "KZ-2026-001")
	checkCell("C2", "Сборка")
	checkCell("D2", "Иван Петров")
	checkCell("G2", "12500.50 RUB")
	checkCell("H2", models.StatusApproved.ToHuman())
	checkCell("L2", "12.03.2026")
	checkCell("A3", "KZ-2026-002")
	checkCell("J3", "Петр Сидоров (Сборка)")
	checkCell("K3", "не окупается")
}

func TestExportKaizenRegisterEmpty(t *testing.T) {
	handler := impl{}
	buf, err := handler.ExportKaizenRegister(nil)
	require.Nil(t, err)

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer func() {
		require.Nil(t, f.Close())
	}()
	value, err := f.GetCellValue("Заявки", "A1")
	require.Nil(t, err)
	require.Equal(t, "Номер", value)
}
