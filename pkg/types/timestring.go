package types

import (
	"fmt"
	"regexp"
	"time"
)

// TimeString время в формате "HH:MM" (24-часовой формат)
type TimeString string

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	if !timePattern.MatchString(string(t)) {
		return fmt.Errorf("invalid time format %q, expected HH:MM", string(t))
	}
	return nil
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse time %q: %w", string(t), err)
	}
	return h*60 + m, nil
}

// AddMinutes возвращает время через delta минут (в пределах суток)
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += delta
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("time %q + %d minutes is out of day range", string(t), delta)
	}
	// 24:00 не представимо в HH:MM, прижимаем к 23:59 нельзя - считаем ошибкой
	if total == 24*60 {
		return "", fmt.Errorf("time %q + %d minutes reaches end of day", string(t), delta)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a > b
}
