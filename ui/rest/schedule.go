package rest

import (
	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	"github.com/AzielCF/az-post/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Schedule struct {
	Service domainSchedule.IScheduleUsecase
}

func InitRestSchedule(app fiber.Router, service domainSchedule.IScheduleUsecase) Schedule {
	rest := Schedule{Service: service}
	app.Post("/schedules", rest.Create)
	app.Get("/schedules", rest.List)
	app.Get("/schedules/:id", rest.Get)
	app.Patch("/schedules/:id", rest.Update)
	app.Delete("/schedules/:id", rest.Delete)
	return rest
}

func (controller *Schedule) Create(c *fiber.Ctx) error {
	var request domainSchedule.CreateScheduleRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	created, err := controller.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create schedule",
		Results: created,
	})
}

func (controller *Schedule) List(c *fiber.Ctx) error {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		return c.Status(400).JSON(utils.ResponseData{
			Status:  400,
			Code:    "BAD_REQUEST",
			Message: "owner_id is required",
		})
	}

	schedules, err := controller.Service.ListByOwner(c.UserContext(), ownerID)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch schedules",
		Results: schedules,
	})
}

func (controller *Schedule) Get(c *fiber.Ctx) error {
	s, err := controller.Service.GetByID(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch schedule",
		Results: s,
	})
}

func (controller *Schedule) Update(c *fiber.Ctx) error {
	var request domainSchedule.UpdateScheduleRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	updated, err := controller.Service.Update(c.UserContext(), c.Params("id"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update schedule",
		Results: updated,
	})
}

func (controller *Schedule) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete schedule",
	})
}
