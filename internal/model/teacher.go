package model

// Teacher is a public tutor profile shown to students.
type Teacher struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Rating      int      `json:"rating"`
	Price       int      `json:"price"`    // cents per hour
	Classes     int      `json:"classes"`  // lifetime classes taught
	Earnings    int      `json:"earnings"` // lifetime earnings, cents
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Style       string   `json:"style"`
	Curriculum  string   `json:"curriculum"`
}

// TeacherPatch carries profile fields to overwrite. Nil fields are preserved.
type TeacherPatch struct {
	Name        *string
	Rating      *int
	Price       *int
	Classes     *int
	Earnings    *int
	Description *string
	Tags        []string
	Style       *string
	Curriculum  *string
}

// Apply overwrites fields present in the patch, leaving the rest intact.
func (p TeacherPatch) Apply(t *Teacher) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Classes != nil {
		t.Classes = *p.Classes
	}
	if p.Earnings != nil {
		t.Earnings = *p.Earnings
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
	if p.Style != nil {
		t.Style = *p.Style
	}
	if p.Curriculum != nil {
		t.Curriculum = *p.Curriculum
	}
}
