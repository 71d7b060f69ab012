package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrTrackerNameEmpty   = errors.New("tracker name cannot be empty")
	ErrTrackerNameTooLong = errors.New("tracker name is too long (max 100 chars)")
	ErrEmojiEmpty         = errors.New("tracker emoji cannot be empty")
	ErrEmojiTooLong       = errors.New("tracker emoji must be a single glyph")
	ErrInvalidColor       = errors.New("invalid color format (must be #RRGGBB)")
	ErrEmptySchedule      = errors.New("tracker schedule must contain at least one weekday")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	MaxTrackerNameLen = 100
	// An emoji glyph may be a ZWJ sequence of several code points.
	maxEmojiRunes = 8
)

type Tracker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	Color     string    `json:"color"`
	Schedule  Schedule  `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func validateTracker(name, emoji, color string, schedule Schedule) (string, string, error) {
	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return "", "", ErrTrackerNameEmpty
	}
	if utf8.RuneCountInString(cleanName) > MaxTrackerNameLen {
		return "", "", ErrTrackerNameTooLong
	}

	cleanEmoji := strings.TrimSpace(emoji)
	if cleanEmoji == "" {
		return "", "", ErrEmojiEmpty
	}
	if utf8.RuneCountInString(cleanEmoji) > maxEmojiRunes {
		return "", "", ErrEmojiTooLong
	}

	if !colorRegex.MatchString(color) {
		return "", "", ErrInvalidColor
	}

	if len(schedule) == 0 {
		return "", "", ErrEmptySchedule
	}
	if err := schedule.validate(); err != nil {
		return "", "", err
	}

	return cleanName, cleanEmoji, nil
}

// NewTracker builds a tracker with a fresh id. The id is never reused.
func NewTracker(name, emoji, color string, schedule Schedule) (*Tracker, error) {
	cleanName, cleanEmoji, err := validateTracker(name, emoji, color, schedule)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Tracker{
		ID:        uuid.NewString(),
		Name:      cleanName,
		Emoji:     cleanEmoji,
		Color:     strings.ToUpper(color),
		Schedule:  NewSchedule(schedule...),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update replaces the editable fields in place, preserving the id.
func (t *Tracker) Update(name, emoji, color string, schedule Schedule) error {
	cleanName, cleanEmoji, err := validateTracker(name, emoji, color, schedule)
	if err != nil {
		return err
	}

	t.Name = cleanName
	t.Emoji = cleanEmoji
	t.Color = strings.ToUpper(color)
	t.Schedule = NewSchedule(schedule...)
	t.UpdatedAt = time.Now().UTC()

	return nil
}

// MatchesSearch reports whether name contains text, ignoring case.
// An empty text matches every tracker.
func (t *Tracker) MatchesSearch(text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(text))
}
