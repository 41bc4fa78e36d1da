package apiv1

import (
	"kaizen-tools-backend/controllers"
	audithandler "kaizen-tools-backend/lib/audit"
	"kaizen-tools-backend/models"
	apimodels "kaizen-tools-backend/models/api"
	auditapimodels "kaizen-tools-backend/models/api/audit"

	"github.com/gofiber/fiber/v2"
)

type auditApiController struct {
	controllers.BaseAPIController
}

func InitAuditApiRouters(app fiber.Router) {
	controller := auditApiController{}
	app.Route("kaizen_requests/:id", func(router fiber.Router) {
		router.Get("audit", controller.list)
	})
}

// @Summary Журнал аудита
// @Tags Аудит
// @Description Журнал аудита заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	action				query 	string							false		 "фильтр по действию"
// @Param	page				query 	int								false		 "страница"
// @Param	limit				query 	int								false		 "записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]auditapimodels.AuditView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/audit [get]
func (c *auditApiController) list(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	filter := auditapimodels.AuditFilter{
		Pagination: apimodels.Pagination{
			Page:  ctx.QueryInt("page"),
			Limit: ctx.QueryInt("limit"),
		},
		Action: models.AuditAction(ctx.Query("action")),
	}
	list, rowCount, err := audithandler.Instance.List(id, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала аудита")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
