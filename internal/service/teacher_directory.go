package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/model"
	"github.com/avoronov/chessmentor/internal/storage"
)

// TeacherDirectory owns read and update access to teacher profiles.
type TeacherDirectory struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewTeacherDirectory(store *storage.Store, logger *zap.Logger) *TeacherDirectory {
	return &TeacherDirectory{
		store:  store,
		logger: logger,
	}
}

// List returns every teacher profile. An empty directory is seeded with the
// bootstrap set first, so a cold start is never empty.
func (d *TeacherDirectory) List(ctx context.Context) ([]model.Teacher, error) {
	teachers, err := d.store.Teachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	if len(teachers) > 0 {
		return teachers, nil
	}

	teachers = bootstrapTeachers()
	if err := d.store.SaveTeachers(ctx, teachers); err != nil {
		return nil, fmt.Errorf("seed teachers: %w", err)
	}

	d.logger.Info("seeded bootstrap teachers", zap.Int("count", len(teachers)))

	return teachers, nil
}

// GetByID returns the teacher with the given id, or nil if none matches.
func (d *TeacherDirectory) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	teachers, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range teachers {
		if teachers[i].ID == id {
			teacher := teachers[i]
			return &teacher, nil
		}
	}

	return nil, nil
}

// Update shallow-merges patch into the teacher's profile and persists the
// result. Returns nil without side effects when no profile matches.
func (d *TeacherDirectory) Update(ctx context.Context, id string, patch model.TeacherPatch) (*model.Teacher, error) {
	teachers, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range teachers {
		if teachers[i].ID != id {
			continue
		}

		patch.Apply(&teachers[i])
		if err := d.store.SaveTeachers(ctx, teachers); err != nil {
			return nil, fmt.Errorf("save teachers: %w", err)
		}

		d.logger.Info("teacher profile updated", zap.String("teacher_id", id))

		teacher := teachers[i]
		return &teacher, nil
	}

	return nil, nil
}

// bootstrapTeachers is the fixed seed applied on first use.
func bootstrapTeachers() []model.Teacher {
	return []model.Teacher{
		{
			ID:          "t-anna",
			Name:        "Anna Petrova",
			Rating:      2350,
			Price:       4500,
			Description: "WGM focused on building solid fundamentals with new players.",
			Tags:        []string{"Beginner", "Tactics"},
			Style:       "Patient and methodical, lots of guided puzzles.",
			Curriculum:  "Opening principles, basic tactics, simple endgames.",
		},
		{
			ID:          "t-marcus",
			Name:        "Marcus Lee",
			Rating:      2480,
			Price:       6000,
			Description: "IM and former national junior coach, sharp attacking chess.",
			Tags:        []string{"Advanced", "Openings"},
			Style:       "Dynamic, concrete preparation against your exact repertoire.",
			Curriculum:  "Repertoire building, calculation training, attack and defence.",
		},
		{
			ID:          "t-irina",
			Name:        "Irina Volkova",
			Rating:      2210,
			Price:       3800,
			Description: "FM specializing in converting small advantages.",
			Tags:        []string{"Intermediate", "Endgames"},
			Style:       "Calm positional play, model games before exercises.",
			Curriculum:  "Pawn structures, rook endgames, planning in quiet positions.",
		},
	}
}
