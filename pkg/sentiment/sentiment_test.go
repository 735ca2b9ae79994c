package sentiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompound_Polarity(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name  string
		text  string
		label string
	}{
		{name: "positive", text: "This toothpaste is great, my teeth feel clean.", label: LabelPositive},
		{name: "negative", text: "Terrible taste and it made my gums hurt.", label: LabelNegative},
		{name: "neutral", text: "The tube is blue and weighs 100 grams.", label: LabelNeutral},
		{name: "empty", text: "", label: LabelNeutral},
		{name: "negated positive", text: "It is not good", label: LabelNegative},
		{name: "but shifts weight", text: "The flavor is good but the results are terrible", label: LabelNegative},
		{name: "descriptive claim", text: "My teeth are noticeably whiter and the yellow stains are gone", label: LabelNeutral},
		{name: "lukewarm", text: "Meh. It's okay I guess, nothing special", label: LabelNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := a.Compound(tt.text)
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 1.0)
			assert.Equal(t, tt.label, Label(score), "score %.3f", score)
		})
	}
}

func TestCompound_Modifiers(t *testing.T) {
	a := NewAnalyzer()

	base := a.Compound("The whitening is good")
	assert.Greater(t, a.Compound("The whitening is very good"), base)
	assert.Greater(t, a.Compound("The whitening is good!!"), base)
	assert.Greater(t, a.Compound("The whitening is GOOD"), base)
	assert.Less(t, a.Compound("The whitening is slightly good"), base)
	assert.InDelta(t, 1.9/math.Sqrt(1.9*1.9+15), base, 1e-9)
}

func TestCompound_MatchesVader(t *testing.T) {
	a := NewAnalyzer()

	assert.InDelta(t, 0.0, a.Compound("My teeth are noticeably whiter and the yellow stains are gone"), 1e-3)
	assert.InDelta(t, -0.167, a.Compound("Meh. It's okay I guess, nothing special"), 5e-3)
	assert.Greater(t, a.Compound("I LOVE this toothpaste!!!"), a.Compound("I love this toothpaste"))
}

func TestLabel_Thresholds(t *testing.T) {
	assert.Equal(t, LabelPositive, Label(0.05))
	assert.Equal(t, LabelNeutral, Label(0.0499))
	assert.Equal(t, LabelNeutral, Label(-0.0499))
	assert.Equal(t, LabelNegative, Label(-0.05))
}

