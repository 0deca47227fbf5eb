package model

import "time"

// Request represents a student's request for access to a teacher's room.
// At most one exists per (student, teacher) pair.
type Request struct {
	ID        string        `json:"id" validate:"required"`
	StudentID string        `json:"student_id" validate:"required"`
	TeacherID string        `json:"teacher_id" validate:"required"`
	Status    RequestStatus `json:"status" validate:"required"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
}

// RequestStatus is the access-request lifecycle state.
type RequestStatus string

// Request status constants
const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Terminal reports whether the status admits no further transition.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// IsPending checks if request is pending
func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsApproved checks if request is approved
func (r *Request) IsApproved() bool {
	return r.Status == RequestStatusApproved
}

// IsRejected checks if request is rejected
func (r *Request) IsRejected() bool {
	return r.Status == RequestStatusRejected
}
