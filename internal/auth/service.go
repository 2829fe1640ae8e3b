package auth

import (
	"context"
	"errors"
	"time"

	"github.com/Piroenzo/mini-red-social/internal/apierr"
	"github.com/Piroenzo/mini-red-social/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Tokens expire after a fixed horizon; there is no refresh flow.
const accessTokenTTL = 7 * 24 * time.Hour

type Service struct {
	secret []byte
	db     db.Querier
	redis  *redis.Client
}

type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, querier db.Querier, redisClient *redis.Client) *Service {
	return &Service{
		secret: []byte(secret),
		db:     querier,
		redis:  redisClient,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, string, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return User{}, "", apierr.Validation("username, email and password required")
	}

	var taken bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1)`, req.Username).Scan(&taken); err != nil {
		return User{}, "", err
	}
	if taken {
		return User{}, "", apierr.Conflict("username already exists")
	}
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, req.Email).Scan(&taken); err != nil {
		return User{}, "", err
	}
	if taken {
		return User{}, "", apierr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	user := User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Bio:          req.Bio,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, bio)
		VALUES ($1,$2,$3,$4)
		RETURNING id, profile_pic, created_at
	`, user.Username, user.Email, user.PasswordHash, user.Bio)
	if err := row.Scan(&user.ID, &user.ProfilePic, &user.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			// A concurrent registration won the race after the pre-checks.
			return User{}, "", apierr.Conflict("username or email already taken")
		}
		return User{}, "", err
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (User, string, error) {
	if req.Username == "" || req.Password == "" {
		return User{}, "", apierr.Validation("username and password required")
	}

	row := s.db.QueryRow(ctx, `
		SELECT id, username, email, password_hash, bio, profile_pic, created_at
		FROM users WHERE username=$1
	`, req.Username)

	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Bio, &user.ProfilePic, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Same message as a wrong password; callers cannot tell the two apart.
		return User{}, "", apierr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return User{}, "", apierr.Unauthorized("invalid credentials")
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, email, bio, profile_pic, created_at
		FROM users WHERE id=$1
	`, userID)

	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Bio, &user.ProfilePic, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apierr.NotFound("user not found")
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (User, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE users
		SET bio = COALESCE($2, bio), profile_pic = COALESCE($3, profile_pic)
		WHERE id=$1
		RETURNING id, username, email, bio, profile_pic, created_at
	`, userID, req.Bio, req.ProfilePic)

	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Bio, &user.ProfilePic, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apierr.NotFound("user not found")
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// RevokeToken denylists the token's jti until its natural expiry. Without a
// configured Redis client revocation is a no-op.
func (s *Service) RevokeToken(ctx context.Context, claims *Claims) error {
	if s.redis == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, revokedKey(claims.ID), "1", ttl).Err()
}

func (s *Service) signToken(userID int64) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}
