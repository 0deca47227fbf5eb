package model

// Preferences is a student's stated matching profile collected during
// onboarding.
type Preferences struct {
	Level string `json:"level"` // beginner, intermediate or advanced
	Goal  string `json:"goal"`  // desired specialization, e.g. tactics
	Style string `json:"style"` // keyword matched against teacher style text
}
