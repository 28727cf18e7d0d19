package wallet

import (
	"fmt"
	"math/rand"
)

// CardStyle selects the visual family of an account card.
type CardStyle string

const (
	StyleFlat     CardStyle = "flat"
	StyleGradient CardStyle = "gradient"
)

// Pattern families draw their variant index from different ranges.
const (
	patternCircle  = "circle"
	patternRhombus = "rhombus"

	cardCircleTotal  = 9
	cardRhombusTotal = 7
)

// Preset color triples per family: card background, gradient end, pattern
// tint. Presets are handed out without repetition until exhausted.
var flatPresets = [][3]string{
	{"#6E82F6", "#6E82F6", "#5164C1"},
	{"#E6677E", "#E6677E", "#B14F61"},
	{"#64BFA0", "#64BFA0", "#479B7E"},
	{"#E2A36B", "#E2A36B", "#B57E4C"},
	{"#9A7CE6", "#9A7CE6", "#755CB4"},
	{"#5BB9D1", "#5BB9D1", "#4391A5"},
}

var gradientPresets = [][3]string{
	{"#6BB6FF", "#1D59F2", "#0E3FB5"},
	{"#FF8E8E", "#D3264C", "#9E1B38"},
	{"#81E3C2", "#14A776", "#0C7F59"},
	{"#FFC16B", "#E07800", "#A85A00"},
	{"#C79BFF", "#7323DE", "#5519A6"},
	{"#7BE0F0", "#1493AB", "#0E6F82"},
}

var cardStyles = []CardStyle{StyleFlat, StyleGradient}

func presetsFor(style CardStyle) [][3]string {
	if style == StyleGradient {
		return gradientPresets
	}
	return flatPresets
}

// pickColors selects a color triple for a new card. Among the family's
// presets whose leading color is unused it picks uniformly at random;
// once presets are exhausted it synthesizes a fresh triple so cards do
// not visually collide while presets last.
func pickColors(rng *rand.Rand, style CardStyle, usedColorFrom map[string]struct{}) [3]string {
	var available [][3]string
	for _, preset := range presetsFor(style) {
		if _, used := usedColorFrom[preset[0]]; !used {
			available = append(available, preset)
		}
	}
	if len(available) > 0 {
		return available[rng.Intn(len(available))]
	}
	if style == StyleGradient {
		return generateGradientColors(rng)
	}
	return generateFlatColors(rng)
}

// pickStyle selects a card family uniformly at random.
func pickStyle(rng *rand.Rand) CardStyle {
	return cardStyles[rng.Intn(len(cardStyles))]
}

// pickPattern selects a pattern identifier uniformly across families, with
// the variant index drawn from the family's own range.
func pickPattern(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return fmt.Sprintf("card-%s-%d", patternCircle, rng.Intn(cardCircleTotal))
	}
	return fmt.Sprintf("card-%s-%d", patternRhombus, rng.Intn(cardRhombusTotal))
}

func hexColor(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func randomChannel(rng *rand.Rand) int {
	// Bias away from extremes so patterns stay visible on the card.
	return 64 + rng.Intn(128)
}

// generateFlatColors synthesizes a flat triple: one body color plus a
// darker pattern tint.
func generateFlatColors(rng *rand.Rand) [3]string {
	r, g, b := randomChannel(rng), randomChannel(rng), randomChannel(rng)
	body := hexColor(r, g, b)
	tint := hexColor(r*3/4, g*3/4, b*3/4)
	return [3]string{body, body, tint}
}

// generateGradientColors synthesizes a gradient triple: light start, darker
// end, darkest pattern tint.
func generateGradientColors(rng *rand.Rand) [3]string {
	r, g, b := randomChannel(rng), randomChannel(rng), randomChannel(rng)
	return [3]string{
		hexColor(r+64, g+64, b+64),
		hexColor(r, g, b),
		hexColor(r*3/4, g*3/4, b*3/4),
	}
}
