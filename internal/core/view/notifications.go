package view

import "github.com/brocode/complaint-portal/internal/core/domain"

// NotificationsState is what the notifications panel renders.
type NotificationsState struct {
	Items       []domain.Notification `json:"items"`
	UnreadCount int                   `json:"unreadCount"`
}

// NotificationsPanel holds the session's notifications and their read flags.
type NotificationsPanel struct {
	items []domain.Notification
}

func NewNotificationsPanel(src Source) *NotificationsPanel {
	return &NotificationsPanel{items: src.Notifications()}
}

func (p *NotificationsPanel) UnreadCount() int {
	n := 0
	for _, it := range p.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// MarkRead flags a notification as read and returns the link to its
// complaint.
func (p *NotificationsPanel) MarkRead(id string) (string, error) {
	for i := range p.items {
		if p.items[i].ID == id {
			p.items[i].Read = true
			return domain.ComplaintPath(p.items[i].ComplaintID), nil
		}
	}
	return "", domain.ErrNotificationNotFound
}

func (p *NotificationsPanel) State() NotificationsState {
	return NotificationsState{
		Items:       append([]domain.Notification{}, p.items...),
		UnreadCount: p.UnreadCount(),
	}
}
