package apiv1

import (
	"kaizen-tools-backend/controllers"
	xlsexport "kaizen-tools-backend/lib/export/xls"
	kaizenreqhandler "kaizen-tools-backend/lib/kaizen-req"
	"kaizen-tools-backend/models"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"

	"github.com/gofiber/fiber/v2"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app fiber.Router) {
	controller := reportApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Get("requests/xlsx", controller.requestsXlsx)
	})
}

// @Summary Реестр заявок
// @Tags Отчеты
// @Description Выгрузка реестра заявок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status				query 	string							false		 "фильтр по статусу"
// @Param	department_id		query 	string							false		 "фильтр по подразделению"
// @Success 200 {file} byte
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/requests/xlsx [get]
func (c *reportApiController) requestsXlsx(ctx *fiber.Ctx) error {
	filter := kaizenapimodels.KaizenFilter{
		Status:       models.KaizenStatus(ctx.Query("status")),
		DepartmentID: ctx.Query("department_id"),
		Search:       ctx.Query("search"),
	}
	list, err := kaizenreqhandler.Instance.Register(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения реестра заявок")
	}
	buf, err := xlsexport.Instance.ExportKaizenRegister(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования файла выгрузки")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="kaizen_requests.xlsx"`)
	return ctx.Status(fiber.StatusOK).SendStream(buf)
}
