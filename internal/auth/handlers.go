package auth

import (
	"github.com/Piroenzo/mini-red-social/internal/apierr"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/register", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Validation("invalid payload")
		}
		user, token, err := svc.Register(c.Context(), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "user registered successfully",
			"access_token": token,
			"user":         user,
		})
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Validation("invalid payload")
		}
		user, token, err := svc.Login(c.Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":      "login successful",
			"access_token": token,
			"user":         user,
		})
	})

	r.Get("/profile", authMiddleware, func(c *fiber.Ctx) error {
		user, err := svc.Profile(c.Context(), UserID(c))
		if err != nil {
			return err
		}
		return c.JSON(user)
	})

	r.Put("/profile", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return apierr.Validation("invalid payload")
		}
		user, err := svc.UpdateProfile(c.Context(), UserID(c), req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "profile updated successfully",
			"user":    user,
		})
	})

	r.Post("/logout", authMiddleware, func(c *fiber.Ctx) error {
		if claims, ok := c.Locals("claims").(*Claims); ok {
			if err := svc.RevokeToken(c.Context(), claims); err != nil {
				return err
			}
		}
		return c.JSON(fiber.Map{"message": "logged out"})
	})
}
