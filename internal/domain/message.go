package domain

import (
	"strings"
	"time"
)

const DefaultMentionTrigger = "mention all"

type Message struct {
	ID       string
	SenderID MemberID
	Text     string
	SentAt   time.Time
}

func IsTrigger(text string, phrase string) bool {
	normalizedPhrase := strings.ToLower(strings.TrimSpace(phrase))
	if normalizedPhrase == "" {
		return false
	}

	return strings.ToLower(strings.TrimSpace(text)) == normalizedPhrase
}
