package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/redis/go-redis/v9"
)

const unreadCountTTL = 5 * time.Minute

// NotificationService creates and queries per-user notifications. The
// unread counter is cached in Redis when a client is wired; without one the
// service falls through to the database.
type NotificationService struct {
	notifRepo *repository.NotificationRepository
	userRepo  *repository.UserRepository
	rdb       *redis.Client
}

func NewNotificationService(notifRepo *repository.NotificationRepository, userRepo *repository.UserRepository, rdb *redis.Client) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		rdb:       rdb,
	}
}

// NotificationListResult is one page of notifications.
type NotificationListResult struct {
	Items      []entity.Notification `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// Notify stores one notification for a user and drops their cached unread
// count.
func (s *NotificationService) Notify(ctx context.Context, userID, title, message, notifType, entityType, entityID string) error {
	n := &entity.Notification{
		ID:                uuid.New().String()[:32],
		UserID:            userID,
		Title:             title,
		Message:           message,
		NotificationType:  notifType,
		RelatedEntityType: entityType,
		RelatedEntityID:   entityID,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// NotifyRole fans one notification out to every active user of a role.
func (s *NotificationService) NotifyRole(ctx context.Context, role, title, message, notifType, entityType, entityID string) error {
	users, err := s.userRepo.ListActiveByRole(ctx, role)
	if err != nil {
		return fmt.Errorf("list users for role %s: %w", role, err)
	}
	for _, u := range users {
		if err := s.Notify(ctx, u.ID, title, message, notifType, entityType, entityID); err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) (*NotificationListResult, error) {
	items, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &NotificationListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UnreadCount returns the user's unread counter, served from Redis when it
// is warm.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if s.rdb != nil {
		// Cache trouble is not fatal, fall through to the database.
		cached, err := s.rdb.Get(ctx, unreadKey(userID)).Result()
		if err == nil {
			if count, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	if s.rdb != nil {
		s.rdb.Set(ctx, unreadKey(userID), strconv.FormatInt(count, 10), unreadCountTTL)
	}
	return count, nil
}

// MarkRead flips one notification owned by the caller.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	applied, err := s.notifRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if !applied {
		return fmt.Errorf("%w: notification", repository.ErrNotFound)
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// MarkAllRead flips every unread notification of the caller and returns how
// many it touched.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	affected, err := s.notifRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	s.invalidateUnread(ctx, userID)
	return affected, nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, unreadKey(userID))
	}
}

func unreadKey(userID string) string {
	return "apds:notifications:unread:" + userID
}
