package like

import (
	"github.com/Piroenzo/mini-red-social/internal/auth"
	"github.com/Piroenzo/mini-red-social/internal/post"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/:id/like", authMiddleware, func(c *fiber.Ctx) error {
		postID, err := post.IDParam(c)
		if err != nil {
			return err
		}
		result, err := svc.Toggle(c.Context(), auth.UserID(c), postID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":     "post " + result.Action + " successfully",
			"likes_count": result.LikesCount,
			"is_liked":    result.IsLiked,
		})
	})
}
