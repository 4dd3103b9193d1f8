// Package classify tags messages with a coarse category from keyword buckets.
package classify

import (
	"strings"

	"univoice/internal/model"
)

var keywordBuckets = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryLecture, []string{
		"授業", "講義", "説明", "板書", "スライド", "速い", "早い", "遅い", "聞こえ", "わかりにく", "分かりにく",
		"lecture", "class", "slides", "pace",
	}},
	{model.CategoryAssignment, []string{
		"課題", "宿題", "レポート", "締め切り", "締切", "提出", "量が多",
		"assignment", "homework", "report", "deadline",
	}},
	{model.CategoryGrading, []string{
		"成績", "評価", "採点", "点数", "単位", "試験", "テスト", "不公平",
		"grade", "grading", "exam", "score", "unfair",
	}},
	{model.CategoryFacility, []string{
		"教室", "設備", "エアコン", "暑い", "寒い", "マイク", "プロジェクター", "wi-fi", "wifi", "椅子",
		"room", "projector", "microphone", "air conditioning",
	}},
}

// Classify returns the bucket with the most keyword hits, CategoryOther when
// the text is non-empty but matches nothing, and CategoryNone for empty text.
// Ties go to the bucket listed first.
func Classify(text string) model.Category {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return model.CategoryNone
	}

	best := model.CategoryOther
	bestScore := 0
	for _, bucket := range keywordBuckets {
		score := 0
		for _, kw := range bucket.keywords {
			score += strings.Count(lowered, kw)
		}
		if score > bestScore {
			best = bucket.category
			bestScore = score
		}
	}
	return best
}

type Count struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// Summary is the category frequency over a message set.
type Summary struct {
	Counts []Count         `json:"counts"`
	Mode   model.Category `json:"mode,omitempty"`
}

// Summarize counts categories in the given order and reports the mode.
// Messages without a category are ignored. Ties go to the category first
// encountered in the input order.
func Summarize(messages []model.Message) Summary {
	index := make(map[model.Category]int)
	var counts []Count
	for _, m := range messages {
		if m.Category == model.CategoryNone {
			continue
		}
		i, ok := index[m.Category]
		if !ok {
			i = len(counts)
			index[m.Category] = i
			counts = append(counts, Count{Category: m.Category})
		}
		counts[i].Count++
	}

	summary := Summary{Counts: counts}
	best := 0
	for _, c := range counts {
		if c.Count > best {
			best = c.Count
			summary.Mode = c.Category
		}
	}
	return summary
}
