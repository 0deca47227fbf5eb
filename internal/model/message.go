package model

import "time"

// SenderRole identifies which side of a conversation wrote a message.
type SenderRole string

const (
	SenderStudent SenderRole = "student"
	SenderTeacher SenderRole = "teacher"
)

// Message is one chat entry in a (student, teacher) conversation.
type Message struct {
	ID        string     `json:"id" validate:"required"`
	StudentID string     `json:"student_id" validate:"required"`
	TeacherID string     `json:"teacher_id" validate:"required"`
	Sender    SenderRole `json:"sender" validate:"required"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
}
