package models

// Message is a direct message between two mutually-following accounts.
type Message struct {
	BaseModel

	Content string `json:"content"`
	IsRead  bool   `json:"is_read"`

	SenderID   uint    `json:"sender_id"`
	Sender     Account `json:"sender"`
	ReceiverID uint    `json:"receiver_id"`
	Receiver   Account `json:"receiver"`
}
