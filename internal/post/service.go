package post

import (
	"context"
	"errors"

	"github.com/Piroenzo/mini-red-social/internal/apierr"
	"github.com/Piroenzo/mini-red-social/internal/db"

	"github.com/jackc/pgx/v5"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// Like and comment counts are computed at read time, not cached.
const postColumns = `p.id, p.content, p.image, p.created_at,
		       u.id, u.username, u.profile_pic,
		       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)`

func (s *Service) List(ctx context.Context, page, perPage int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return Page{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`, perPage, (page-1)*perPage)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := scanPost(rows, &p); err != nil {
			return Page{}, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	pages := (total + int64(perPage) - 1) / int64(perPage)
	return Page{Posts: posts, Total: total, Pages: pages, CurrentPage: page}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Post, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id=$1
	`, id)

	var p Post
	err := scanPost(row, &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, apierr.NotFound("post not found")
	}
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (Post, error) {
	if req.Content == "" {
		return Post{}, apierr.Validation("content is required")
	}

	p := Post{Content: req.Content, Image: req.Image}
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (user_id, content, image)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, userID, req.Content, req.Image)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return Post{}, err
	}

	row = s.db.QueryRow(ctx, `SELECT id, username, profile_pic FROM users WHERE id=$1`, userID)
	if err := row.Scan(&p.Author.ID, &p.Author.Username, &p.Author.ProfilePic); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID, postID int64, req UpdateRequest) (Post, error) {
	ownerID, err := s.ownerOf(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if ownerID != userID {
		return Post{}, apierr.Forbidden("you do not own this post")
	}

	_, err = s.db.Exec(ctx, `
		UPDATE posts
		SET content = COALESCE($2, content), image = COALESCE($3, image)
		WHERE id=$1
	`, postID, req.Content, req.Image)
	if err != nil {
		return Post{}, err
	}

	return s.Get(ctx, postID)
}

func (s *Service) Delete(ctx context.Context, userID, postID int64) error {
	ownerID, err := s.ownerOf(ctx, postID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return apierr.Forbidden("you do not own this post")
	}

	// Likes and comments go with the post via FK cascade.
	_, err = s.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, postID)
	return err
}

func (s *Service) ownerOf(ctx context.Context, postID int64) (int64, error) {
	var ownerID int64
	err := s.db.QueryRow(ctx, `SELECT user_id FROM posts WHERE id=$1`, postID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apierr.NotFound("post not found")
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

func scanPost(row pgx.Row, p *Post) error {
	return row.Scan(&p.ID, &p.Content, &p.Image, &p.CreatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.ProfilePic,
		&p.LikesCount, &p.CommentsCount)
}
