package opsview

import (
	"errors"
	"fmt"
	"regexp"
)

var timeRanges = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}(,\d{2}:\d{2}-\d{2}:\d{2})*$`)

// TimePeriod is an Opsview time period. Day fields are range lists
// like "00:00-24:00" or "00:00-09:00,17:00-24:00"; empty means the day
// is excluded.
type TimePeriod struct {
	Name      string
	Alias     string
	Monday    string
	Tuesday   string
	Wednesday string
	Thursday  string
	Friday    string
	Saturday  string
	Sunday    string
	ID        string
	Ref       string
}

func NewTimePeriod(name, alias string, days map[string]string) (*TimePeriod, error) {
	if name == "" {
		return nil, errors.New("timeperiod name is missing or empty")
	}

	tp := &TimePeriod{Name: name, Alias: alias}
	fields := map[string]*string{
		"monday":    &tp.Monday,
		"tuesday":   &tp.Tuesday,
		"wednesday": &tp.Wednesday,
		"thursday":  &tp.Thursday,
		"friday":    &tp.Friday,
		"saturday":  &tp.Saturday,
		"sunday":    &tp.Sunday,
	}

	for day, value := range days {
		field, ok := fields[day]
		if !ok {
			return nil, fmt.Errorf("unknown day %q in timeperiod %s", day, name)
		}
		if value != "" && !timeRanges.MatchString(value) {
			return nil, fmt.Errorf(
				"time %q for %s is not in the correct format, expected e.g. 00:00-24:00 or 00:00-09:00,17:00-24:00",
				value, day)
		}
		*field = value
	}

	return tp, nil
}

func (tp *TimePeriod) Key() string        { return tp.Name }
func (tp *TimePeriod) ObjectName() string { return tp.Name }
func (tp *TimePeriod) Kind() Kind         { return KindTimePeriod }

func (tp *TimePeriod) JSON(shallow bool) map[string]any {
	m := map[string]any{
		"name":      tp.Name,
		"alias":     tp.Alias,
		"monday":    tp.Monday,
		"tuesday":   tp.Tuesday,
		"wednesday": tp.Wednesday,
		"thursday":  tp.Thursday,
		"friday":    tp.Friday,
		"saturday":  tp.Saturday,
		"sunday":    tp.Sunday,
		"id":        tp.ID,
		"ref":       tp.Ref,
	}

	if shallow {
		return pruneShallow(m)
	}
	return m
}
