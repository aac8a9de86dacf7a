package rest

import (
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	"github.com/AzielCF/az-post/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Owner struct {
	Service domainOwner.IOwnerUsecase
}

func InitRestOwner(app fiber.Router, service domainOwner.IOwnerUsecase) Owner {
	rest := Owner{Service: service}
	app.Post("/owners", rest.Create)
	app.Get("/owners", rest.List)
	app.Get("/owners/:id", rest.Get)
	app.Patch("/owners/:id", rest.Update)
	app.Delete("/owners/:id", rest.Delete)
	return rest
}

func (controller *Owner) Create(c *fiber.Ctx) error {
	var request domainOwner.CreateOwnerRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	created, err := controller.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create owner",
		Results: created,
	})
}

func (controller *Owner) List(c *fiber.Ctx) error {
	owners, err := controller.Service.List(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch owners",
		Results: owners,
	})
}

func (controller *Owner) Get(c *fiber.Ctx) error {
	o, err := controller.Service.GetByID(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch owner",
		Results: o,
	})
}

func (controller *Owner) Update(c *fiber.Ctx) error {
	var request domainOwner.UpdateOwnerRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	updated, err := controller.Service.Update(c.UserContext(), c.Params("id"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update owner",
		Results: updated,
	})
}

func (controller *Owner) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete owner",
	})
}
