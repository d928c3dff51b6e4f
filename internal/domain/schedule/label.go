package schedule

import (
	"strings"
	"time"
)

// LabelLayout is how a slot is shown to users and stored in the registry.
const LabelLayout = "03:04 PM"

var legacyLabelLayouts = []string{
	LabelLayout,
	"3:04 PM",
	"03:04PM",
	"3:04PM",
	"15:04",
}

// Label formats the time of day of t.
func Label(t time.Time) string {
	return t.Format(LabelLayout)
}

// NormalizeLabel maps the label variants found in stored data ("9:00 am",
// "09:00AM", "13:00") to the canonical LabelLayout.
func NormalizeLabel(s string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return "", ErrInvalidLabel
	}
	for _, layout := range legacyLabelLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(LabelLayout), nil
		}
	}
	return "", ErrInvalidLabel
}

// LabelVariants lists every spelling of label that older writers may have
// stored, canonical form first. Store-side filters match against all of them
// so a legacy "9:00 AM" still blocks a reservation of "09:00 AM".
func LabelVariants(label string) []string {
	canonical, err := NormalizeLabel(label)
	if err != nil {
		return []string{label}
	}
	t, _ := time.Parse(LabelLayout, canonical)

	seen := make(map[string]struct{}, 2*len(legacyLabelLayouts))
	out := make([]string, 0, 2*len(legacyLabelLayouts))
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, layout := range legacyLabelLayouts {
		v := t.Format(layout)
		add(v)
		add(strings.ToLower(v))
	}
	return out
}
