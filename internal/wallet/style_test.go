package wallet

import (
	"math/rand"
	"regexp"
	"strconv"
	"testing"
)

func TestPickColorsAvoidsUsedPresets(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	used := make(map[string]struct{})
	for i := 0; i < len(flatPresets); i++ {
		colors := pickColors(rng, StyleFlat, used)
		if _, taken := used[colors[0]]; taken {
			t.Fatalf("preset %s handed out twice", colors[0])
		}
		used[colors[0]] = struct{}{}
	}
}

func TestPickColorsSynthesizesAfterExhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	used := make(map[string]struct{})
	for _, preset := range gradientPresets {
		used[preset[0]] = struct{}{}
	}

	colors := pickColors(rng, StyleGradient, used)
	for _, preset := range gradientPresets {
		if preset[0] == colors[0] {
			t.Fatalf("exhausted presets must not be reused")
		}
	}
	if colors[0] == "" || colors[1] == "" || colors[2] == "" {
		t.Fatalf("synthesized triple has empty entries: %v", colors)
	}
}

func TestPickPatternStaysInFamilyBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	re := regexp.MustCompile(`^card-(circle|rhombus)-(\d+)$`)

	for i := 0; i < 200; i++ {
		pattern := pickPattern(rng)
		m := re.FindStringSubmatch(pattern)
		if m == nil {
			t.Fatalf("unexpected pattern format %q", pattern)
		}
		n, _ := strconv.Atoi(m[2])
		limit := cardCircleTotal
		if m[1] == patternRhombus {
			limit = cardRhombusTotal
		}
		if n < 0 || n >= limit {
			t.Fatalf("pattern index %d out of range for %s family", n, m[1])
		}
	}
}

func TestGeneratedColorsAreValidHex(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	re := regexp.MustCompile(`^#[0-9A-F]{6}$`)

	for _, triple := range [][3]string{generateFlatColors(rng), generateGradientColors(rng)} {
		for _, color := range triple {
			if !re.MatchString(color) {
				t.Fatalf("invalid hex color %q", color)
			}
		}
	}
}
