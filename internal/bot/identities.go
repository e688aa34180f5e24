package bot

import "strings"

var difficultyLabels = map[Difficulty]string{
	DifficultyBeginner:     "新手陪练",
	DifficultyIntermediate: "中级陪练",
	DifficultyAdvanced:     "高级陪练",
	DifficultyExpert:       "大师陪练",
}

// DisplayName returns the practice-opponent label for a difficulty.
func DisplayName(d Difficulty) string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return difficultyLabels[DifficultyIntermediate]
}

// IsAIPlayerID reports whether id follows the generated "ai-" convention.
func IsAIPlayerID(id string) bool {
	return strings.HasPrefix(id, aiIDPrefix)
}
