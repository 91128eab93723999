// Package advice maps a sentiment label to the canned texts and display hints
// shown next to a journal entry. Every function is a pure table lookup.
package advice

import "io.winapps.moodjournal/internal/sentiment"

// Palette is the colour set a client uses to render an entry of a given sentiment
type Palette struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
	Text    string `json:"text"`
}

var summaries = map[sentiment.Label]string{
	sentiment.Positive: "You had a mostly positive day today. Great!",
	sentiment.Negative: "You may have gone through some difficult feelings. Remember, this is only a moment.",
	sentiment.Neutral:  "You had a fairly calm and balanced day.",
}

var advices = map[sentiment.Label]string{
	sentiment.Positive: "Wonderful! Treat yourself to a small celebration today to keep this positive energy going.",
	sentiment.Negative: "Give yourself a 10-minute break. Focus on a calm activity you enjoy.",
	sentiment.Neutral:  "Your balance is good. Maybe set a small goal and focus on achieving it.",
}

var emojis = map[sentiment.Label]string{
	sentiment.Positive: "🤩",
	sentiment.Negative: "😔",
	sentiment.Neutral:  "😶",
}

var palettes = map[sentiment.Label]Palette{
	sentiment.Positive: {Primary: "#FEEB9A", Accent: "#D9B44A", Text: "#333"},
	sentiment.Neutral:  {Primary: "#B2B2B2", Accent: "#666666", Text: "#fff"},
	sentiment.Negative: {Primary: "#E06C75", Accent: "#983C48", Text: "#fff"},
	sentiment.Default:  {Primary: "#F7F7F7", Accent: "#3498db", Text: "#333"},
}

// SummaryFor returns the one-sentence summary for a label. Default and unknown
// labels share the neutral text.
func SummaryFor(label sentiment.Label) string {
	if s, ok := summaries[label]; ok {
		return s
	}
	return summaries[sentiment.Neutral]
}

// AdviceFor returns the suggestion for a label, with the same fallback as SummaryFor
func AdviceFor(label sentiment.Label) string {
	if a, ok := advices[label]; ok {
		return a
	}
	return advices[sentiment.Neutral]
}

func EmojiFor(label sentiment.Label) string {
	if e, ok := emojis[label]; ok {
		return e
	}
	return "❓"
}

func PaletteFor(label sentiment.Label) Palette {
	if p, ok := palettes[label]; ok {
		return p
	}
	return palettes[sentiment.Default]
}
