package comment

import (
	"context"

	"github.com/Piroenzo/mini-red-social/internal/apierr"
	"github.com/Piroenzo/mini-red-social/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

func (s *Service) ListForPost(ctx context.Context, postID int64) ([]Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.content, c.created_at, u.id, u.username, u.profile_pic
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id=$1
		ORDER BY c.created_at, c.id
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Content, &cm.CreatedAt, &cm.User.ID, &cm.User.Username, &cm.User.ProfilePic); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Service) Create(ctx context.Context, userID, postID int64, content string) (Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return Comment{}, err
	}
	if content == "" {
		return Comment{}, apierr.Validation("comment content is required")
	}

	cm := Comment{Content: content}
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (user_id, post_id, content)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, userID, postID, content)
	if err := row.Scan(&cm.ID, &cm.CreatedAt); err != nil {
		return Comment{}, err
	}

	row = s.db.QueryRow(ctx, `SELECT id, username, profile_pic FROM users WHERE id=$1`, userID)
	if err := row.Scan(&cm.User.ID, &cm.User.Username, &cm.User.ProfilePic); err != nil {
		return Comment{}, err
	}
	return cm, nil
}

func (s *Service) requirePost(ctx context.Context, postID int64) error {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id=$1)`, postID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apierr.NotFound("post not found")
	}
	return nil
}
