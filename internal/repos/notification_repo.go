package repos

import (
	"annapurna/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Append(id, userID, orderID, message string) error {
	var oid any
	if orderID != "" {
		oid = orderID
	}
	_, err := r.db.Exec(`
		INSERT INTO notifications(id, user_id, order_id, message) VALUES(?, ?, ?, ?)`,
		id, userID, oid, message)
	return err
}

func (r *NotificationRepo) ListRecent(userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []domain.Notification
	err := r.db.Select(&out, `
		SELECT id, user_id, COALESCE(order_id, '') AS order_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, userID, limit)
	return out, err
}

// MarkRead flips is_read only when the notification belongs to the caller.
// Zero rows affected is a silent no-op, not an error.
func (r *NotificationRepo) MarkRead(notificationID, callerUserID string) error {
	_, err := r.db.Exec(`
		UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		notificationID, callerUserID)
	return err
}

func (r *NotificationRepo) CountUnread(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID)
	return n, err
}
