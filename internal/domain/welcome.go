package domain

import "strings"

const HandlePlaceholder = "{username}"

var WelcomeTemplates = []string{
	"Welcome @{username} to SimpCity! 🚀🔥",
	"Aree bhai! Ek aur simp aaya! 😆 Welcome @{username}! 🎉",
	"@{username} just entered the simp zone. Buckle up! 😂",
	"Ek naye simp ki entry hui hai! @{username}, welcome bhai! 💀🔥",
}

func RenderWelcome(template string, handle Handle) string {
	return strings.ReplaceAll(template, HandlePlaceholder, string(handle))
}
