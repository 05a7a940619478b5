package classifier

import (
	"context"

	"github.com/tanviarora/moodlog-backend/internal/models"
)

// ConfidenceThreshold is the cutoff below which a raw model label is
// discarded in favor of neutral. Without it the pipeline would trust noisy
// low-confidence guesses.
const ConfidenceThreshold = 0.60

// maxInputRunes caps what we send to the backend so long entries cannot
// trigger model-side length errors.
const maxInputRunes = 512

// Outcome tags which adapter branch produced the category, so callers and
// tests can assert on the branch rather than just the final value.
type Outcome string

const (
	// OutcomeMapped: the fine label was confidently mapped to a category.
	OutcomeMapped Outcome = "mapped"
	// OutcomeLowConfidence: score below threshold, forced to neutral.
	OutcomeLowConfidence Outcome = "low_confidence"
	// OutcomeUnmappedLabel: unknown fine label, defaulted to neutral.
	OutcomeUnmappedLabel Outcome = "unmapped_label"
)

// Result is one classification outcome snapshot.
type Result struct {
	Category        string
	SpecificEmotion string
	Confidence      float64
	Suggestion      string
	Outcome         Outcome
}

// categoryByLabel maps the model's 28 fine-grained emotion labels onto the
// canonical 3-way category. Anything absent defaults to neutral.
var categoryByLabel = map[string]string{
	"admiration":     models.EmotionPositive,
	"amusement":      models.EmotionPositive,
	"approval":       models.EmotionPositive,
	"caring":         models.EmotionPositive,
	"desire":         models.EmotionPositive,
	"excitement":     models.EmotionPositive,
	"gratitude":      models.EmotionPositive,
	"joy":            models.EmotionPositive,
	"love":           models.EmotionPositive,
	"optimism":       models.EmotionPositive,
	"pride":          models.EmotionPositive,
	"relief":         models.EmotionPositive,
	"anger":          models.EmotionNegative,
	"annoyance":      models.EmotionNegative,
	"disappointment": models.EmotionNegative,
	"disapproval":    models.EmotionNegative,
	"disgust":        models.EmotionNegative,
	"embarrassment":  models.EmotionNegative,
	"fear":           models.EmotionNegative,
	"grief":          models.EmotionNegative,
	"nervousness":    models.EmotionNegative,
	"remorse":        models.EmotionNegative,
	"sadness":        models.EmotionNegative,
	"confusion":      models.EmotionNeutral,
	"curiosity":      models.EmotionNeutral,
	"realization":    models.EmotionNeutral,
	"surprise":       models.EmotionNeutral,
	"neutral":        models.EmotionNeutral,
	// the simpler 3-class model passes its labels straight through
	"positive": models.EmotionPositive,
	"negative": models.EmotionNegative,
}

// suggestionByLabel holds emotion-specific coping suggestions. These take
// precedence over the per-category defaults.
var suggestionByLabel = map[string]string{
	"fear":        "Try the 4-7-8 breathing technique: inhale for 4, hold for 7, exhale for 8. 🫁",
	"nervousness": "Try the 4-7-8 breathing technique: inhale for 4, hold for 7, exhale for 8. 🫁",
	"anger":       "Write down exactly what made you angry, then step away for five minutes. 🔥",
	"annoyance":   "Write down exactly what made you angry, then step away for five minutes. 🔥",
	"sadness":     "Be gentle with yourself today. Reach out to someone you trust. 🤍",
	"grief":       "Be gentle with yourself today. Reach out to someone you trust. 🤍",
	"remorse":     "Everyone makes mistakes. Write down one thing you can do differently tomorrow. ✏️",
}

// suggestionByCategory is the generic fallback per category.
var suggestionByCategory = map[string]string{
	models.EmotionPositive: "Keep doing what makes you happy! 🌱",
	models.EmotionNegative: "Try deep breathing or journaling your thoughts. 💙",
	models.EmotionNeutral:  "Reflect on your day and set small goals. 🌤️",
}

// Adapter wraps the external model: it caps input length, applies the
// confidence threshold, maps fine labels to the 3-way category and attaches
// a coping suggestion. Pure over its inputs apart from the backend call.
type Adapter struct {
	backend Backend
}

func NewAdapter(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

// Classify runs the full adapter pipeline. A backend error is returned
// untouched; callers surface it as service-unavailable rather than guessing
// a category.
func (a *Adapter) Classify(ctx context.Context, text string) (*Result, error) {
	if runes := []rune(text); len(runes) > maxInputRunes {
		text = string(runes[:maxInputRunes])
	}

	label, confidence, err := a.backend.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	res := &Result{
		SpecificEmotion: label,
		Confidence:      confidence,
	}

	switch {
	case confidence < ConfidenceThreshold:
		res.Category = models.EmotionNeutral
		res.Outcome = OutcomeLowConfidence
	default:
		category, ok := categoryByLabel[label]
		if !ok {
			res.Category = models.EmotionNeutral
			res.Outcome = OutcomeUnmappedLabel
		} else {
			res.Category = category
			res.Outcome = OutcomeMapped
		}
	}

	if s, ok := suggestionByLabel[label]; ok && res.Outcome == OutcomeMapped {
		res.Suggestion = s
	} else {
		res.Suggestion = suggestionByCategory[res.Category]
	}

	return res, nil
}
