package like

import (
	"context"

	"github.com/Piroenzo/mini-red-social/internal/apierr"
	"github.com/Piroenzo/mini-red-social/internal/db"
)

type Service struct {
	db db.Querier
}

type ToggleResult struct {
	Action     string
	LikesCount int64
	IsLiked    bool
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// Toggle creates the caller's like on a post, or removes it if present. The
// unique constraint on (user_id, post_id) arbitrates concurrent toggles: a
// rowless insert means the like already exists, so this call removes it
// instead of failing.
func (s *Service) Toggle(ctx context.Context, userID, postID int64) (ToggleResult, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id=$1)`, postID).Scan(&exists); err != nil {
		return ToggleResult{}, err
	}
	if !exists {
		return ToggleResult{}, apierr.NotFound("post not found")
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1,$2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`, userID, postID)
	if err != nil {
		return ToggleResult{}, err
	}

	result := ToggleResult{Action: "liked", IsLiked: true}
	if tag.RowsAffected() == 0 {
		if _, err := s.db.Exec(ctx, `DELETE FROM likes WHERE user_id=$1 AND post_id=$2`, userID, postID); err != nil {
			return ToggleResult{}, err
		}
		result = ToggleResult{Action: "unliked", IsLiked: false}
	}

	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id=$1`, postID).Scan(&result.LikesCount); err != nil {
		return ToggleResult{}, err
	}
	return result, nil
}
