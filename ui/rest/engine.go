package rest

import (
	"time"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	"github.com/AzielCF/az-post/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Engine struct {
	Service domainEngine.IEngineUsecase
}

func InitRestEngine(app fiber.Router, service domainEngine.IEngineUsecase) Engine {
	rest := Engine{Service: service}
	app.Get("/engine/trigger", rest.Trigger)
	return rest
}

// Trigger runs one engine pass at the current instant and reports what it
// did. Safe to call concurrently with the background ticker.
func (controller *Engine) Trigger(c *fiber.Ctx) error {
	summary, err := controller.Service.RunPass(c.UserContext(), time.Now().UTC())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Engine pass completed",
		Results: summary,
	})
}
