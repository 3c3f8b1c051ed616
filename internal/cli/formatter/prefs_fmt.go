package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/metis/internal/domain"
)

// FormatPreferences formats the active user preferences.
func FormatPreferences(p domain.UserPreferences) string {
	var b strings.Builder

	short := "no"
	if p.PrefersShortSessions {
		short = "yes"
	}

	biasHint := "well calibrated"
	switch {
	case p.EstimationBias < 0.9:
		biasHint = "tends to under-estimate"
	case p.EstimationBias > 1.1:
		biasHint = "tends to over-estimate"
	}

	lines := [][2]string{
		{"Optimal time of day", p.OptimalTimeOfDay},
		{"Session length", FormatHours(p.RecommendedSessionLength)},
		{"Prefers short sessions", short},
		{"Estimation bias", fmt.Sprintf("%.2f (%s)", p.EstimationBias, biasHint)},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(l[0]+":"), StyleFg.Render(l[1])))
	}

	return RenderBox("Preferences", b.String())
}
