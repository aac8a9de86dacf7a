package rest

import (
	domainPost "github.com/AzielCF/az-post/domains/post"
	"github.com/AzielCF/az-post/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Post struct {
	Service domainPost.IPostUsecase
}

func InitRestPost(app fiber.Router, service domainPost.IPostUsecase) Post {
	rest := Post{Service: service}
	app.Post("/posts/generate", rest.Generate)
	app.Get("/posts", rest.List)
	app.Get("/posts/:id", rest.Get)
	app.Patch("/posts/:id", rest.Update)
	app.Delete("/posts/:id", rest.Delete)
	app.Post("/posts/:id/publish", rest.Publish)
	return rest
}

func (controller *Post) Generate(c *fiber.Ctx) error {
	var request domainPost.GeneratePostRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	created, err := controller.Service.Generate(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success generate post",
		Results: created,
	})
}

func (controller *Post) List(c *fiber.Ctx) error {
	filter := domainPost.ListPostsFilter{
		OwnerID: c.Query("owner_id"),
		Status:  domainPost.Status(c.Query("status")),
	}

	posts, err := controller.Service.List(c.UserContext(), filter)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch posts",
		Results: posts,
	})
}

func (controller *Post) Get(c *fiber.Ctx) error {
	p, err := controller.Service.GetByID(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch post",
		Results: p,
	})
}

func (controller *Post) Update(c *fiber.Ctx) error {
	var request domainPost.UpdatePostRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	updated, err := controller.Service.UpdateContent(c.UserContext(), c.Params("id"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update post",
		Results: updated,
	})
}

func (controller *Post) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete post",
	})
}

func (controller *Post) Publish(c *fiber.Ctx) error {
	published, err := controller.Service.PublishNow(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success publish post",
		Results: published,
	})
}
