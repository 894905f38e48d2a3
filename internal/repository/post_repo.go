package repository

import (
	"Quill/internal/model"
	"Quill/internal/pkg/pagination"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostFilter carries the optional search predicates. Nil/zero fields
// contribute no predicate; everything present composes with AND.
type PostFilter struct {
	Title      string
	Author     string
	CategoryID uint64

	MinViews     *int
	MaxViews     *int
	MinLikes     *int
	MaxLikes     *int
	MinDislikes  *int
	MaxDislikes  *int
	MinComments  *int
	MaxComments  *int
	MinFavorites *int
	MaxFavorites *int

	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type PostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, post *model.Post) error
	GetByID(ctx context.Context, postID uint64) (*model.Post, error)
	GetByIDs(ctx context.Context, postIDs []uint64) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, tx *gorm.DB, postID uint64) error
	FindByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[model.Post], error)
	FindByCategory(ctx context.Context, categoryID uint64, p pagination.Params) (*pagination.Page[model.Post], error)
	Search(ctx context.Context, filter PostFilter, p pagination.Params) (*pagination.Page[model.Post], error)
	FindTrending(ctx context.Context, since time.Time, p pagination.Params) (*pagination.Page[model.Post], error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

func (r *postRepoImpl) Create(ctx context.Context, tx *gorm.DB, post *model.Post) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(post).Error
}

func (r *postRepoImpl) GetByID(ctx context.Context, postID uint64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepoImpl) GetByIDs(ctx context.Context, postIDs []uint64) ([]*model.Post, error) {
	if len(postIDs) == 0 {
		return []*model.Post{}, nil
	}
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Where("id IN ?", postIDs).
		Find(&posts).Error
	return posts, err
}

func (r *postRepoImpl) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepoImpl) Delete(ctx context.Context, tx *gorm.DB, postID uint64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Delete(&model.Post{}, postID).Error
}

func (r *postRepoImpl) FindByUser(ctx context.Context, userID uint64, p pagination.Params) (*pagination.Page[model.Post], error) {
	tx := r.db.Model(&model.Post{}).Where("user_id = ?", userID)
	return pagination.Find[model.Post](ctx, tx, p, "id ASC")
}

func (r *postRepoImpl) FindByCategory(ctx context.Context, categoryID uint64, p pagination.Params) (*pagination.Page[model.Post], error) {
	tx := r.db.Model(&model.Post{}).Where("category_id = ?", categoryID)
	return pagination.Find[model.Post](ctx, tx, p, "id ASC")
}

// Search builds the filtered listing. Substring filters are folded to
// lower case so matching stays case-insensitive across drivers; numeric
// ranges land on post_metrics columns, author matching on the joined
// users row.
func (r *postRepoImpl) Search(ctx context.Context, filter PostFilter, p pagination.Params) (*pagination.Page[model.Post], error) {
	tx := r.db.Model(&model.Post{}).
		Joins("JOIN post_metrics ON post_metrics.post_id = posts.id").
		Joins("JOIN users ON users.id = posts.user_id").
		Select("posts.*")

	if filter.Title != "" {
		tx = tx.Where("LOWER(posts.title) LIKE LOWER(?)", "%"+filter.Title+"%")
	}
	if filter.Author != "" {
		tx = tx.Where("LOWER(users.username) LIKE LOWER(?)", "%"+filter.Author+"%")
	}
	if filter.CategoryID > 0 {
		tx = tx.Where("posts.category_id = ?", filter.CategoryID)
	}

	tx = rangeFilter(tx, "post_metrics.views_count", filter.MinViews, filter.MaxViews)
	tx = rangeFilter(tx, "post_metrics.likes_count", filter.MinLikes, filter.MaxLikes)
	tx = rangeFilter(tx, "post_metrics.dislikes_count", filter.MinDislikes, filter.MaxDislikes)
	tx = rangeFilter(tx, "post_metrics.replies_count", filter.MinComments, filter.MaxComments)
	tx = rangeFilter(tx, "post_metrics.favorites_count", filter.MinFavorites, filter.MaxFavorites)

	if filter.CreatedAfter != nil {
		tx = tx.Where("posts.created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		tx = tx.Where("posts.created_at <= ?", *filter.CreatedBefore)
	}

	return pagination.Find[model.Post](ctx, tx, p, "posts.id ASC")
}

// FindTrending ranks posts interacted with since the cutoff by their
// reconciled engagement score.
func (r *postRepoImpl) FindTrending(ctx context.Context, since time.Time, p pagination.Params) (*pagination.Page[model.Post], error) {
	tx := r.db.Model(&model.Post{}).
		Joins("JOIN post_metrics ON post_metrics.post_id = posts.id").
		Where("post_metrics.last_interaction_at >= ?", since).
		Select("posts.*")
	return pagination.Find[model.Post](ctx, tx, p, "post_metrics.engagement_score DESC, posts.id ASC")
}

func rangeFilter(tx *gorm.DB, column string, min, max *int) *gorm.DB {
	if min != nil {
		tx = tx.Where(column+" >= ?", *min)
	}
	if max != nil {
		tx = tx.Where(column+" <= ?", *max)
	}
	return tx
}

func (r *postRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
