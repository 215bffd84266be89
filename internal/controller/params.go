package controller

import (
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// idParam parses a uuid route parameter. A malformed id cannot name an
// existing record, so it is reported as not found.
func idParam(ctx *fiber.Ctx, name, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NotFound(notFound)
	}
	return id, nil
}

func identity(ctx *fiber.Ctx) (entity.Identity, error) {
	id, ok := serverutils.GetIdentity(ctx)
	if !ok {
		return entity.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}
	return id, nil
}
