package events

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const maxIdentifierLength = 190

var (
	// ErrInvalidEventID indicates that an event identifier is empty or exceeds storage bounds.
	ErrInvalidEventID = errors.New("events: invalid event id")
	// ErrInvalidTitle indicates an empty event title.
	ErrInvalidTitle = errors.New("events: invalid title")
	// ErrInvalidDate indicates a date that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("events: invalid date")
	// ErrInvalidTime indicates a time that is not a HH:MM wall-clock time.
	ErrInvalidTime = errors.New("events: invalid time")
	// ErrInvalidPriority indicates a priority outside the fixed set.
	ErrInvalidPriority = errors.New("events: invalid priority")
	// ErrEventNotFound indicates that no stored event matches the identifier.
	ErrEventNotFound = errors.New("events: event not found")
	// ErrEmptyReorder indicates a reorder batch with no updates.
	ErrEmptyReorder = errors.New("events: empty reorder batch")
)

// Priority enumerates the fixed event priority levels.
type Priority string

const (
	PriorityAlta  Priority = "alta"
	PriorityMedia Priority = "media"
	PriorityBaixa Priority = "baixa"
)

// ParsePriority validates raw input against the fixed priority set.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityAlta:
		return PriorityAlta, nil
	case PriorityMedia:
		return PriorityMedia, nil
	case PriorityBaixa:
		return PriorityBaixa, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

// EventID represents a validated event identifier.
type EventID string

// NewEventID validates raw input and returns an EventID.
func NewEventID(rawInput string) (EventID, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidEventID)
	}
	if len(trimmed) > maxIdentifierLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidEventID, maxIdentifierLength)
	}
	return EventID(trimmed), nil
}

// String returns the underlying string identifier.
func (id EventID) String() string {
	return string(id)
}

// ValidateDate checks that a value is a well-formed YYYY-MM-DD calendar date.
func ValidateDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return nil
}

// ValidateTime checks that a value is a well-formed 24-hour HH:MM time.
func ValidateTime(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return nil
}

// StringList stores an ordered list of short strings as a JSON text column.
type StringList []string

// Value serializes the list for storage. A nil list persists as an empty
// JSON array, never as NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan deserializes the stored JSON array.
func (l *StringList) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		return l.decode([]byte(value))
	case []byte:
		return l.decode(value)
	default:
		return fmt.Errorf("events: cannot scan %T into StringList", src)
	}
}

func (l *StringList) decode(raw []byte) error {
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	if items == nil {
		items = []string{}
	}
	*l = StringList(items)
	return nil
}

// Event models a persisted scheduled item. OrderIndex carries the global
// display sequence; ties are broken by date then time.
type Event struct {
	ID         string     `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	Title      string     `gorm:"column:title;type:text;not null" json:"title"`
	Date       string     `gorm:"column:event_date;size:10;not null;index:idx_events_date" json:"date"`
	Time       string     `gorm:"column:event_time;size:5;not null" json:"time"`
	Location   string     `gorm:"column:location;type:text;not null" json:"location"`
	Priority   Priority   `gorm:"column:priority;size:16;not null" json:"priority"`
	Attendees  StringList `gorm:"column:attendees;type:text;not null" json:"attendees"`
	OrderIndex int        `gorm:"column:order_index;not null;default:0" json:"order"`
}

// TableName provides the explicit table binding for GORM.
func (Event) TableName() string {
	return "events"
}

// ChangeRequest describes the validated input for a create or update.
type ChangeRequest struct {
	ID        EventID
	Title     string
	Date      string
	Time      string
	Location  string
	Priority  Priority
	Attendees []string
	// Order, when nil, falls back to max+1 on create and to the stored
	// value on update.
	Order *int
}

// NewChangeRequest validates the raw field values of a create or update
// payload. ID may be empty for creates; the service generates one.
func NewChangeRequest(id, title, date, timeOfDay, location, priority string, attendees []string, order *int) (ChangeRequest, error) {
	request := ChangeRequest{Location: strings.TrimSpace(location), Order: order}

	if trimmed := strings.TrimSpace(id); trimmed != "" {
		eventID, err := NewEventID(trimmed)
		if err != nil {
			return ChangeRequest{}, err
		}
		request.ID = eventID
	}

	request.Title = strings.TrimSpace(title)
	if request.Title == "" {
		return ChangeRequest{}, fmt.Errorf("%w: empty", ErrInvalidTitle)
	}

	if err := ValidateDate(date); err != nil {
		return ChangeRequest{}, err
	}
	request.Date = date

	if err := ValidateTime(timeOfDay); err != nil {
		return ChangeRequest{}, err
	}
	request.Time = timeOfDay

	parsedPriority, err := ParsePriority(priority)
	if err != nil {
		return ChangeRequest{}, err
	}
	request.Priority = parsedPriority

	if attendees == nil {
		attendees = []string{}
	}
	request.Attendees = attendees

	return request, nil
}

// OrderUpdate is one entry of a reorder batch.
type OrderUpdate struct {
	ID    EventID
	Order int
}
