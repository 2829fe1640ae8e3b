package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Piroenzo/mini-red-social/internal/apierr"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

func TestJWTMiddleware(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apierr.Handler})
	app.Get("/private", JWTMiddleware("secret", nil), func(c *fiber.Ctx) error {
		if UserID(c) == 0 {
			return apierr.Unauthorized("no user id")
		}
		return c.SendStatus(http.StatusOK)
	})

	svc := NewService("secret", nil, nil)

	// missing token
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}

	// garbage token
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for garbage token")
	}

	// wrong scheme
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for wrong scheme")
	}

	// valid token
	token, _ := svc.signToken(7)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok")
	}
}

func TestJWTMiddlewareRevokedToken(t *testing.T) {
	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	defer client.Close()

	svc := NewService("secret", nil, client)
	token, err := svc.signToken(7)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: apierr.Handler})
	app.Get("/private", JWTMiddleware("secret", client), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok before revocation")
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if err := svc.RevokeToken(context.Background(), parsed.Claims.(*Claims)); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized after revocation")
	}
}
