package model

// Chapter is a named sub-study inside a Room with its own position and notes.
type Chapter struct {
	Name       string `json:"name"`
	Fen        string `json:"fen"`
	Annotation string `json:"annotation"`
}

// Room is the mutable session state for one teacher/session pairing. The
// board encoding is stored opaquely; only the chess engine interprets it.
type Room struct {
	Fen         string         `json:"fen"`
	History     []string       `json:"history"`
	Chapters    []Chapter      `json:"chapters"`
	Annotations map[int]string `json:"annotations"` // keyed by move index
}

// RoomPatch carries session fields to overwrite. Nil fields are preserved,
// so two patches touching different fields compose instead of clobbering.
type RoomPatch struct {
	Fen         *string
	History     []string
	Chapters    []Chapter
	Annotations map[int]string
}

// Apply overwrites fields present in the patch, leaving the rest intact.
func (p RoomPatch) Apply(r *Room) {
	if p.Fen != nil {
		r.Fen = *p.Fen
	}
	if p.History != nil {
		r.History = p.History
	}
	if p.Chapters != nil {
		r.Chapters = p.Chapters
	}
	if p.Annotations != nil {
		r.Annotations = p.Annotations
	}
}
