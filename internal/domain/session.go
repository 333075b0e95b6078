package domain

import (
	"strings"
	"time"
)

type Credentials struct {
	Username string
	Password string
}

// Session is the persisted login state that lets a restart skip the password login.
type Session struct {
	Username      string
	UserID        MemberID
	Authorization string
	DeviceID      string
	UUID          string
	Cookies       map[string]string
	SavedAt       time.Time
}

func (s Session) Valid() bool {
	return strings.TrimSpace(s.Username) != "" &&
		strings.TrimSpace(string(s.UserID)) != "" &&
		strings.TrimSpace(s.Authorization) != ""
}
