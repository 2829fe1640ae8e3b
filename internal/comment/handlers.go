package comment

import (
	"github.com/Piroenzo/mini-red-social/internal/apierr"
	"github.com/Piroenzo/mini-red-social/internal/auth"
	"github.com/Piroenzo/mini-red-social/internal/post"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id/comments", func(c *fiber.Ctx) error {
		postID, err := post.IDParam(c)
		if err != nil {
			return err
		}
		comments, err := svc.ListForPost(c.Context(), postID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"comments": comments})
	})

	r.Post("/:id/comments", authMiddleware, func(c *fiber.Ctx) error {
		postID, err := post.IDParam(c)
		if err != nil {
			return err
		}
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Validation("invalid payload")
		}
		created, err := svc.Create(c.Context(), auth.UserID(c), postID, req.Content)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "comment created successfully",
			"comment": created,
		})
	})
}
