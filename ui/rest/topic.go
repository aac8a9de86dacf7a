package rest

import (
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	"github.com/AzielCF/az-post/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Topic struct {
	Service domainTopic.ITopicUsecase
}

func InitRestTopic(app fiber.Router, service domainTopic.ITopicUsecase) Topic {
	rest := Topic{Service: service}
	app.Post("/topics", rest.Create)
	app.Get("/topics", rest.List)
	app.Get("/topics/:id", rest.Get)
	app.Patch("/topics/:id", rest.Update)
	app.Delete("/topics/:id", rest.Delete)
	return rest
}

func (controller *Topic) Create(c *fiber.Ctx) error {
	var request domainTopic.CreateTopicRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	created, err := controller.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create topic",
		Results: created,
	})
}

func (controller *Topic) List(c *fiber.Ctx) error {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		return c.Status(400).JSON(utils.ResponseData{
			Status:  400,
			Code:    "BAD_REQUEST",
			Message: "owner_id is required",
		})
	}

	topics, err := controller.Service.ListByOwner(c.UserContext(), ownerID)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch topics",
		Results: topics,
	})
}

func (controller *Topic) Get(c *fiber.Ctx) error {
	t, err := controller.Service.GetByID(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch topic",
		Results: t,
	})
}

func (controller *Topic) Update(c *fiber.Ctx) error {
	var request domainTopic.UpdateTopicRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	updated, err := controller.Service.Update(c.UserContext(), c.Params("id"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update topic",
		Results: updated,
	})
}

func (controller *Topic) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete topic",
	})
}
