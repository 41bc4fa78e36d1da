package apiv1

import (
	"kaizen-tools-backend/controllers"
	approvalhandler "kaizen-tools-backend/lib/approval"
	"kaizen-tools-backend/middleware"
	"kaizen-tools-backend/models"
	apimodels "kaizen-tools-backend/models/api"
	approvalapimodels "kaizen-tools-backend/models/api/approval"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"

	"github.com/gofiber/fiber/v2"
)

type approvalApiController struct {
	controllers.BaseAPIController
}

func InitApprovalApiRouters(app fiber.Router) {
	controller := approvalApiController{}
	app.Route("kaizen_requests/:id", func(router fiber.Router) {
		router.Get("approvals", controller.trail)
		router.Get("card.pdf", controller.card)
		router.Route("decision", func(decisionRoute fiber.Router) {
			decisionRoute.Post("own_manager", controller.ownManager)
			decisionRoute.Post("own_hod", controller.ownHod)
			decisionRoute.Post("cross_manager", controller.crossManager)
			decisionRoute.Post("cross_hod", controller.crossHod)
			decisionRoute.Post("agm", controller.agm)
			decisionRoute.Post("gm", controller.gm)
		})
	})
}

// @Summary Решение менеджера подразделения заявки
// @Tags Согласование
// @Description Решение менеджера подразделения заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.DecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/decision/own_manager [post]
func (c *approvalApiController) ownManager(ctx *fiber.Ctx) error {
	return c.departmentDecision(ctx, approvalhandler.Instance.OwnManagerDecision)
}

// @Summary Решение руководителя подразделения заявки
// @Tags Согласование
// @Description Решение руководителя подразделения заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.DecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/decision/own_hod [post]
func (c *approvalApiController) ownHod(ctx *fiber.Ctx) error {
	return c.departmentDecision(ctx, approvalhandler.Instance.OwnHodDecision)
}

// @Summary Решение менеджера смежного подразделения
// @Tags Согласование
// @Description Решение менеджера смежного подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.DecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/decision/cross_manager [post]
func (c *approvalApiController) crossManager(ctx *fiber.Ctx) error {
	return c.departmentDecision(ctx, approvalhandler.Instance.CrossManagerDecision)
}

// @Summary Решение руководителя смежного подразделения
// @Tags Согласование
// @Description Решение руководителя смежного подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.DecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/decision/cross_hod [post]
func (c *approvalApiController) crossHod(ctx *fiber.Ctx) error {
	return c.departmentDecision(ctx, approvalhandler.Instance.CrossHodDecision)
}

// @Summary Решение заместителя генерального директора
// @Tags Согласование
// @Description Решение заместителя генерального директора
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.SingleDecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/decision/agm [post]
func (c *approvalApiController) agm(ctx *fiber.Ctx) error {
	return c.singleDecision(ctx, approvalhandler.Instance.AgmDecision)
}

// @Summary Решение генерального директора
// @Tags Согласование
// @Description Решение генерального директора
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.SingleDecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/decision/gm [post]
func (c *approvalApiController) gm(ctx *fiber.Ctx) error {
	return c.singleDecision(ctx, approvalhandler.Instance.GmDecision)
}

// @Summary История решений
// @Tags Согласование
// @Description История решений по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ApprovalTrailView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/approvals [get]
func (c *approvalApiController) trail(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	resp, err := approvalhandler.Instance.Trail(id, actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории решений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Карточка заявки
// @Tags Согласование
// @Description Печатная карточка заявки с историей решений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} byte
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/card.pdf [get]
func (c *approvalApiController) card(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	pdfFile, err := approvalhandler.Instance.Card(id, actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования карточки заявки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="kaizen_card.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}

func (c *approvalApiController) departmentDecision(ctx *fiber.Ctx, decisionFunc func(string, models.Actor, approvalapimodels.DecisionData) (kaizenapimodels.KaizenRequestView, error)) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.DecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	resp, err := decisionFunc(id, actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка применения решения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func (c *approvalApiController) singleDecision(ctx *fiber.Ctx, decisionFunc func(string, models.Actor, approvalapimodels.SingleDecisionData) (kaizenapimodels.KaizenRequestView, error)) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.SingleDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	resp, err := decisionFunc(id, actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка применения решения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
