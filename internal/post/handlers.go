package post

import (
	"github.com/Piroenzo/mini-red-social/internal/apierr"
	"github.com/Piroenzo/mini-red-social/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		perPage := c.QueryInt("per_page", defaultPerPage)
		result, err := svc.List(c.Context(), page, perPage)
		if err != nil {
			return err
		}
		return c.JSON(result)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Validation("invalid payload")
		}
		created, err := svc.Create(c.Context(), auth.UserID(c), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "post created successfully",
			"post":    created,
		})
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		postID, err := IDParam(c)
		if err != nil {
			return err
		}
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Validation("invalid payload")
		}
		updated, err := svc.Update(c.Context(), auth.UserID(c), postID, req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "post updated successfully",
			"post":    updated,
		})
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		postID, err := IDParam(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Context(), auth.UserID(c), postID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "post deleted successfully"})
	})
}

// IDParam parses the :id path segment. A non-numeric id behaves like a
// missing post.
func IDParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, apierr.NotFound("post not found")
	}
	return int64(id), nil
}
