package leaders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vidaplena/agenda/internal/events"
)

const maxIdentifierLength = 190

var (
	// ErrInvalidLeaderID indicates that a leader identifier is empty or exceeds storage bounds.
	ErrInvalidLeaderID = errors.New("leaders: invalid leader id")
	// ErrInvalidName indicates an empty leader name.
	ErrInvalidName = errors.New("leaders: invalid name")
	// ErrInvalidPhone indicates an empty phone number.
	ErrInvalidPhone = errors.New("leaders: invalid phone")
	// ErrLeaderNotFound indicates that no stored leader matches the identifier.
	ErrLeaderNotFound = errors.New("leaders: leader not found")
)

// LeaderID represents a validated leader identifier.
type LeaderID string

// NewLeaderID validates raw input and returns a LeaderID.
func NewLeaderID(rawInput string) (LeaderID, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidLeaderID)
	}
	if len(trimmed) > maxIdentifierLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidLeaderID, maxIdentifierLength)
	}
	return LeaderID(trimmed), nil
}

// String returns the underlying string identifier.
func (id LeaderID) String() string {
	return string(id)
}

// Leader models a persisted contact record. Leaders carry no ordering field;
// list views sort by name at read time.
type Leader struct {
	ID         string            `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	Name       string            `gorm:"column:name;type:text;not null;index:idx_leaders_name" json:"name"`
	Phone      string            `gorm:"column:phone_e164;size:32;not null" json:"phone"`
	Ministries events.StringList `gorm:"column:ministries;type:text;not null" json:"ministries"`
	OptIn      bool              `gorm:"column:opt_in;not null;default:true" json:"optIn"`
}

// TableName provides the explicit table binding for GORM.
func (Leader) TableName() string {
	return "leaders"
}

// ChangeRequest describes the validated input for a create or update.
type ChangeRequest struct {
	ID         LeaderID
	Name       string
	Phone      string
	Ministries []string
	// OptIn, when nil, defaults to true on create and keeps the stored
	// value on update.
	OptIn *bool
}

// NewChangeRequest validates the raw field values of a create or update
// payload. ID may be empty for creates; the service generates one.
func NewChangeRequest(id, name, phone string, ministries []string, optIn *bool) (ChangeRequest, error) {
	request := ChangeRequest{OptIn: optIn}

	if trimmed := strings.TrimSpace(id); trimmed != "" {
		leaderID, err := NewLeaderID(trimmed)
		if err != nil {
			return ChangeRequest{}, err
		}
		request.ID = leaderID
	}

	request.Name = strings.TrimSpace(name)
	if request.Name == "" {
		return ChangeRequest{}, fmt.Errorf("%w: empty", ErrInvalidName)
	}

	request.Phone = strings.TrimSpace(phone)
	if request.Phone == "" {
		return ChangeRequest{}, fmt.Errorf("%w: empty", ErrInvalidPhone)
	}

	if ministries == nil {
		ministries = []string{}
	}
	request.Ministries = ministries

	return request, nil
}
