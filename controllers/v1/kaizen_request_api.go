package apiv1

import (
	"kaizen-tools-backend/controllers"
	kaizenreqhandler "kaizen-tools-backend/lib/kaizen-req"
	"kaizen-tools-backend/middleware"
	apimodels "kaizen-tools-backend/models/api"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"

	"github.com/gofiber/fiber/v2"
)

type kaizenReqApiController struct {
	controllers.BaseAPIController
}

func InitKaizenRequestApiRouters(app fiber.Router) {
	controller := kaizenReqApiController{}
	app.Route("kaizen_requests", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Get("my", controller.my)
		router.Get("pending_approvals", controller.pendingApprovals)
		router.Get("by_request_id/:requestId", controller.getByRequestID)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("submit", controller.submit)
		})
	})
}

// @Summary Список заявок
// @Tags Заявка
// @Description Список заявок с учетом роли пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kaizenapimodels.KaizenFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/list [post]
func (c *kaizenReqApiController) list(ctx *fiber.Ctx) error {
	var payload kaizenapimodels.KaizenFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	list, rowCount, err := kaizenreqhandler.Instance.List(actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание черновика
// @Tags Заявка
// @Description Создание черновика заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kaizenapimodels.KaizenRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests [post]
func (c *kaizenReqApiController) create(ctx *fiber.Ctx) error {
	var payload kaizenapimodels.KaizenRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	id, err := kaizenreqhandler.Instance.Create(actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Мои заявки
// @Tags Заявка
// @Description Заявки текущего инициатора
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]kaizenapimodels.KaizenRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/my [get]
func (c *kaizenReqApiController) my(ctx *fiber.Ctx) error {
	actor := middleware.GetActor(ctx)
	list, err := kaizenreqhandler.Instance.MyRequests(actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Ожидают решения
// @Tags Заявка
// @Description Заявки, ожидающие решения текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]kaizenapimodels.KaizenRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/pending_approvals [get]
func (c *kaizenReqApiController) pendingApprovals(ctx *fiber.Ctx) error {
	actor := middleware.GetActor(ctx)
	list, err := kaizenreqhandler.Instance.PendingApprovals(actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Заявка
// @Description Получение заявки по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id} [get]
func (c *kaizenReqApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	resp, err := kaizenreqhandler.Instance.GetByID(id, actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по номеру
// @Tags Заявка
// @Description Получение заявки по бизнес-номеру
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requestId      		path    string  				    	true         "номер заявки"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/by_request_id/{requestId} [get]
func (c *kaizenReqApiController) getByRequestID(ctx *fiber.Ctx) error {
	requestID := ctx.Params("requestId")
	if requestID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан номер заявки"))
	}
	actor := middleware.GetActor(ctx)
	resp, err := kaizenreqhandler.Instance.GetByRequestID(requestID, actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Заявка
// @Description Обновление черновика заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kaizenapimodels.KaizenRequestData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id} [put]
func (c *kaizenReqApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload kaizenapimodels.KaizenRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	err = kaizenreqhandler.Instance.Update(id, actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Заявка
// @Description Удаление черновика заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id} [delete]
func (c *kaizenReqApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	err = kaizenreqhandler.Instance.Delete(id, actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Подача на согласование
// @Tags Заявка
// @Description Перевод черновика на согласование
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kaizenapimodels.KaizenRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kaizen_requests/{id}/submit [post]
func (c *kaizenReqApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := middleware.GetActor(ctx)
	resp, err := kaizenreqhandler.Instance.Submit(id, actor)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи заявки на согласование")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
