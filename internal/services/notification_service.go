package services

import (
	"annapurna/internal/domain"
	"annapurna/internal/repos"
)

type NotificationService struct {
	Notifs *repos.NotificationRepo
}

func NewNotificationService(notifs *repos.NotificationRepo) *NotificationService {
	return &NotificationService{Notifs: notifs}
}

// Recent returns the user's latest notifications (default 10) plus the
// unread count the dashboards badge with.
func (s *NotificationService) Recent(userID string, limit int) ([]domain.Notification, int, error) {
	list, err := s.Notifs.ListRecent(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.Notifs.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

// MarkRead is a no-op when the notification belongs to someone else.
func (s *NotificationService) MarkRead(notificationID, callerUserID string) error {
	return s.Notifs.MarkRead(notificationID, callerUserID)
}
