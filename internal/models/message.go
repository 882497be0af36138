package models

import "time"

// Message is a directed message between two users. ReadAt stays nil until
// the recipient marks the message read; once set it never changes.
type Message struct {
	ID       int        `db:"id" json:"id"`
	FromUser string     `db:"from_user" json:"from_user"`
	ToUser   string     `db:"to_user" json:"to_user"`
	Body     string     `db:"body" json:"body"`
	SentAt   time.Time  `db:"sent_at" json:"sent_at"`
	ReadAt   *time.Time `db:"read_at" json:"read_at"`
}

// MessageDetail is a message with both participant profiles expanded,
// joined at read time.
type MessageDetail struct {
	ID       int        `json:"id"`
	FromUser Profile    `json:"from_user"`
	ToUser   Profile    `json:"to_user"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
}

// SentMessage is an outgoing message with the recipient profile expanded.
type SentMessage struct {
	ID     int        `json:"id"`
	ToUser Profile    `json:"to_user"`
	Body   string     `json:"body"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
}

// ReceivedMessage is an incoming message with the sender profile expanded.
type ReceivedMessage struct {
	ID       int        `json:"id"`
	FromUser Profile    `json:"from_user"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
}
