package session

import "bsk-backend/internal/models"

var levels = map[models.Grade]map[models.Exam]models.Level{
	models.Grade11: {
		models.ExamEGE: models.LevelAdvanced,
		models.ExamOGE: models.LevelBasic,
	},
	models.Grade10: {
		models.ExamEGE: models.LevelIntermediate,
		models.ExamOGE: models.LevelBasic,
	},
	models.Grade9: {
		models.ExamOGE: models.LevelBasic,
	},
}

// DetermineLevel maps a grade and exam to a difficulty tier. Pairs missing
// from the table are basic.
func DetermineLevel(grade models.Grade, exam models.Exam) models.Level {
	if level, ok := levels[grade][exam]; ok {
		return level
	}
	return models.LevelBasic
}
