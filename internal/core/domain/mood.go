package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMood is returned when a value does not match any configured mood option.
var ErrUnknownMood = errors.New("unknown mood")

// MoodOption is one selectable mood. The emoji is the value written to the store.
type MoodOption struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// DefaultMoodOptions returns the stock enumeration shown on the board.
func DefaultMoodOptions() []MoodOption {
	return []MoodOption{
		{Emoji: "😊", Label: "Happy"},
		{Emoji: "😐", Label: "Neutral"},
		{Emoji: "😕", Label: "Confused"},
		{Emoji: "😤", Label: "Frustrated"},
		{Emoji: "😢", Label: "Sad"},
	}
}

// MoodSet is the fixed, ordered enumeration of moods a reading may take.
type MoodSet struct {
	options []MoodOption
}

// NewMoodSet builds a MoodSet, rejecting empty or duplicated emojis and labels.
func NewMoodSet(options []MoodOption) (MoodSet, error) {
	if len(options) == 0 {
		return MoodSet{}, errors.New("mood set must contain at least one option")
	}
	seen := make(map[string]bool, len(options)*2)
	opts := make([]MoodOption, 0, len(options))
	for _, o := range options {
		emoji := strings.TrimSpace(o.Emoji)
		label := strings.TrimSpace(o.Label)
		if emoji == "" || label == "" {
			return MoodSet{}, fmt.Errorf("mood option %q/%q must have both emoji and label", o.Emoji, o.Label)
		}
		if seen[emoji] || seen[strings.ToLower(label)] {
			return MoodSet{}, fmt.Errorf("duplicate mood option %s %s", emoji, label)
		}
		seen[emoji] = true
		seen[strings.ToLower(label)] = true
		opts = append(opts, MoodOption{Emoji: emoji, Label: label})
	}
	return MoodSet{options: opts}, nil
}

// ParseMoodOptions reads a list of the form "😊:Happy,😐:Neutral".
func ParseMoodOptions(raw string) ([]MoodOption, error) {
	var options []MoodOption
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		emoji, label, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("mood option %q: expected emoji:label", part)
		}
		options = append(options, MoodOption{Emoji: strings.TrimSpace(emoji), Label: strings.TrimSpace(label)})
	}
	if len(options) == 0 {
		return nil, errors.New("no mood options given")
	}
	return options, nil
}

// Options returns a copy of the options in display order.
func (s MoodSet) Options() []MoodOption {
	out := make([]MoodOption, len(s.options))
	copy(out, s.options)
	return out
}

// Len returns the number of options.
func (s MoodSet) Len() int {
	return len(s.options)
}

// Resolve maps an emoji or a case-insensitive label to the canonical emoji.
func (s MoodSet) Resolve(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, o := range s.options {
		if o.Emoji == value || strings.EqualFold(o.Label, value) {
			return o.Emoji, true
		}
	}
	return "", false
}

// Contains reports whether emoji is one of the canonical values.
func (s MoodSet) Contains(emoji string) bool {
	for _, o := range s.options {
		if o.Emoji == emoji {
			return true
		}
	}
	return false
}

// Label returns the label for a canonical emoji, or the emoji itself when unknown.
func (s MoodSet) Label(emoji string) string {
	for _, o := range s.options {
		if o.Emoji == emoji {
			return o.Label
		}
	}
	return emoji
}
