package session

import (
	"testing"

	"bsk-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLevel(t *testing.T) {
	tests := []struct {
		grade models.Grade
		exam  models.Exam
		want  models.Level
	}{
		{models.Grade11, models.ExamEGE, models.LevelAdvanced},
		{models.Grade11, models.ExamOGE, models.LevelBasic},
		{models.Grade10, models.ExamEGE, models.LevelIntermediate},
		{models.Grade10, models.ExamOGE, models.LevelBasic},
		{models.Grade9, models.ExamOGE, models.LevelBasic},
		{models.Grade9, models.ExamEGE, models.LevelBasic},
		{"8", models.ExamEGE, models.LevelBasic},
		{models.Grade11, "sat", models.LevelBasic},
		{"", "", models.LevelBasic},
	}

	for _, tt := range tests {
		t.Run(string(tt.grade)+"/"+string(tt.exam), func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineLevel(tt.grade, tt.exam))
		})
	}
}
