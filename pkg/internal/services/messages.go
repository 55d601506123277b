package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/devlog-ge/devlog-server/pkg/internal/database"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/samber/lo"
)

type ConversationSummary struct {
	Account     models.Account `json:"account"`
	LastMessage models.Message `json:"last_message"`
	UnreadCount int            `json:"unread_count"`
}

// SendMessage delivers a direct message. Both directional follow edges must
// exist at the time of sending; the gate is evaluated fresh on every call.
func SendMessage(sender models.Account, receiver models.Account, content string) (models.Message, error) {
	var message models.Message

	if sender.ID == receiver.ID {
		return message, ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return message, ErrEmptyMessage
	}
	if !IsAccountMutual(sender, receiver) {
		return message, ErrMessagingNotMutual
	}

	message = models.Message{
		Content:    content,
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
	}
	if err := database.C.Create(&message).Error; err != nil {
		return message, err
	}

	return message, nil
}

// ListConversations groups the user's messages by counterpart: one summary
// per distinct other participant, carrying the latest message and how many
// of the counterpart's messages are still unread. Most recent thread first.
func ListConversations(user models.Account) ([]ConversationSummary, error) {
	var messages []models.Message
	if err := database.C.
		Where("sender_id = ? OR receiver_id = ?", user.ID, user.ID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("unable to list messages: %v", err)
	}

	groups := lo.GroupBy(messages, func(item models.Message) uint {
		if item.SenderID == user.ID {
			return item.ReceiverID
		}
		return item.SenderID
	})
	if len(groups) == 0 {
		return []ConversationSummary{}, nil
	}

	var counterparts []models.Account
	if err := database.C.Where("id IN ?", lo.Keys(groups)).Find(&counterparts).Error; err != nil {
		return nil, fmt.Errorf("unable to load counterparts: %v", err)
	}
	counterpartMap := lo.SliceToMap(counterparts, func(item models.Account) (uint, models.Account) {
		return item.ID, item
	})

	summaries := make([]ConversationSummary, 0, len(groups))
	for id, thread := range groups {
		counterpart, ok := counterpartMap[id]
		if !ok {
			continue
		}
		summaries = append(summaries, ConversationSummary{
			Account:     counterpart,
			LastMessage: thread[len(thread)-1],
			UnreadCount: lo.CountBy(thread, func(item models.Message) bool {
				return item.ReceiverID == user.ID && !item.IsRead
			}),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return summaries, nil
}

// OpenThread returns the full exchange with the counterpart in chronological
// order and marks every unread message addressed to the viewer as read in a
// single batch update.
func OpenThread(user models.Account, counterpart models.Account) ([]models.Message, error) {
	if user.ID == counterpart.ID {
		return nil, ErrSelfMessage
	}
	if !IsAccountMutual(user, counterpart) {
		return nil, ErrMessagingNotMutual
	}

	var messages []models.Message
	if err := database.C.
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			user.ID, counterpart.ID, counterpart.ID, user.ID,
		).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return messages, err
	}

	if err := database.C.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", counterpart.ID, user.ID, false).
		Update("is_read", true).Error; err != nil {
		return messages, err
	}

	return messages, nil
}

func CountUnreadMessages(user models.Account) int64 {
	var count int64
	if err := database.C.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}
