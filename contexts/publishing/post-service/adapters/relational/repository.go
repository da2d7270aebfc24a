package relational

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scribe/contexts/publishing/post-service/domain/entities"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/contexts/publishing/post-service/ports"
	"scribe/internal/platform/db"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

// Repository persists posts and their outbox through gorm on postgres or
// sqlite. Each write and its outbox row share one transaction.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the posts and post_outbox tables. The users table must
// already exist; posts.author_id references it with ON DELETE CASCADE.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&postModel{}, &outboxModel{})
}

func (r *Repository) ListPosts(ctx context.Context) ([]entities.Post, error) {
	var rows []postModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "post_id"}, Desc: true}).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreatePostWithOutbox(ctx context.Context, post entities.Post, event ports.PostEvent) error {
	outbox, err := outboxModelFromEvent(event)
	if err != nil {
		return err
	}
	row := postModelFromEntity(post)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&outbox).Error
	})
	return r.mapWriteError("create", post.PostID, err)
}

func (r *Repository) UpdatePostWithOutbox(ctx context.Context, post entities.Post, event ports.PostEvent) error {
	outbox, err := outboxModelFromEvent(event)
	if err != nil {
		return err
	}
	row := postModelFromEntity(post)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&postModel{}).
			Where("post_id = ? AND author_id = ?", post.PostID, post.AuthorID).
			Select("title", "content", "description", "tags", "updated_at").
			Omit(clause.Associations).
			Updates(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPostNotFound
		}
		return tx.Create(&outbox).Error
	})
	return r.mapWriteError("update", post.PostID, err)
}

func (r *Repository) DeletePostWithOutbox(ctx context.Context, postID string, event ports.PostEvent) error {
	outbox, err := outboxModelFromEvent(event)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ?", postID).Delete(&postModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPostNotFound
		}
		return tx.Create(&outbox).Error
	})
	return r.mapWriteError("delete", postID, err)
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Order("outbox_id ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("outbox message %s not found", outboxID)
	}
	return nil
}

func (r *Repository) mapWriteError(op string, postID string, err error) error {
	if err == nil || errors.Is(err, domainerrors.ErrPostNotFound) {
		return err
	}
	message, ok := db.ConstraintViolation(err)
	if !ok {
		return err
	}
	r.logger.Warn("post write violated constraint",
		"event", "post_write_conflict",
		"module", "publishing/post-service",
		"layer", "adapter",
		"operation", op,
		"post_id", postID,
	)
	return fmt.Errorf("%w: %s", domainerrors.ErrConflict, message)
}

type postModel struct {
	PostID      string      `gorm:"column:post_id;primaryKey;size:64"`
	Title       string      `gorm:"column:title;size:200;not null"`
	Content     string      `gorm:"column:content;type:text;not null"`
	Description string      `gorm:"column:description;size:500;not null;default:''"`
	Tags        []string    `gorm:"column:tags;serializer:json;type:text"`
	AuthorID    string      `gorm:"column:author_id;size:64;not null;index:idx_posts_author_id"`
	Author      authorModel `gorm:"foreignKey:AuthorID;references:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `gorm:"column:created_at;not null;index:idx_posts_created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;not null"`
}

func (postModel) TableName() string {
	return "posts"
}

// authorModel is the read side of the users table. Its column tags match the
// identity schema so a migration never alters them.
type authorModel struct {
	UserID   string `gorm:"column:user_id;primaryKey;size:64"`
	Username string `gorm:"column:username;size:64;not null;uniqueIndex:idx_users_username"`
}

func (authorModel) TableName() string {
	return "users"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey;size:64"`
	EventType    string     `gorm:"column:event_type;size:64;not null"`
	PartitionKey string     `gorm:"column:partition_key;size:64;not null"`
	Payload      []byte     `gorm:"column:payload;not null"`
	Status       string     `gorm:"column:status;size:16;not null;index:idx_post_outbox_status_created,priority:1"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null;index:idx_post_outbox_status_created,priority:2"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "post_outbox"
}

func postModelFromEntity(post entities.Post) postModel {
	return postModel{
		PostID:      post.PostID,
		Title:       post.Title,
		Content:     post.Content,
		Description: post.Desc,
		Tags:        append([]string{}, post.Tags...),
		AuthorID:    post.AuthorID,
		CreatedAt:   post.CreatedAt.UTC(),
		UpdatedAt:   post.UpdatedAt.UTC(),
	}
}

func (m postModel) toEntity() entities.Post {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return entities.Post{
		PostID:         m.PostID,
		Title:          m.Title,
		Content:        m.Content,
		Desc:           m.Description,
		Tags:           tags,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.Author.Username,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func outboxModelFromEvent(event ports.PostEvent) (outboxModel, error) {
	envelope, err := event.Envelope()
	if err != nil {
		return outboxModel{}, err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return outboxModel{}, err
	}
	return outboxModel{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt,
	}, nil
}
