package service

import (
	"fmt"
	"unicode/utf8"
)

const emailPreviewLength = 280

func welcomeEmailTemplate(name, landingURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Find people to swap skills with:
%s

Best,
The %s Team`, name, landingURL, appName)

	return subject, body
}

func newMessageEmailTemplate(recipientName, senderName, message, inboxURL, appName string) (string, string) {
	subject := fmt.Sprintf("%s sent you a message on %s", senderName, appName)
	body := fmt.Sprintf(`Hi %s,

%s wrote:

%s

Read and reply in your inbox:
%s

Best,
The %s Team`, recipientName, senderName, preview(message), inboxURL, appName)

	return subject, body
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= emailPreviewLength {
		return s
	}
	r := []rune(s)
	return string(r[:emailPreviewLength]) + "…"
}
