package models

import "time"

// DefaultPicture is used when a user registers without an avatar.
const DefaultPicture = "https://icon-library.com/images/anonymous-avatar-icon/anonymous-avatar-icon-25.jpg"

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupInfo carries the fields that only exist for group chats.
type GroupInfo struct {
	Name  string `json:"name"`
	Admin *User  `json:"admin,omitempty"`
}

// Chat is either a direct chat (Group == nil, exactly two users) or a
// group chat (Group != nil, at least two users, one of them the admin).
type Chat struct {
	ID            int        `json:"id"`
	Users         []User     `json:"users"`
	Group         *GroupInfo `json:"group,omitempty"`
	LatestMessage *Message   `json:"latest_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsGroup reports whether the chat is a group chat.
func (c *Chat) IsGroup() bool { return c.Group != nil }

type Message struct {
	ID        int       `json:"id"`
	ChatID    int       `json:"chat_id"`
	SenderID  int       `json:"sender_id"`
	Content   string    `json:"content"`
	Sender    *User     `json:"sender,omitempty"`
	Chat      *Chat     `json:"chat,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
