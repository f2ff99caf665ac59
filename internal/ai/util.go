package ai

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// cleanReply strips reasoning blocks, wrapping quotes and hard-caps length.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = thinkBlockRe.ReplaceAllString(reply, "")
	reply = strings.TrimSpace(reply)

	if len(reply) >= 2 {
		quotes := []struct{ open, close string }{
			{`"`, `"`}, {`'`, `'`}, {"“", "”"}, {"‘", "’"},
		}
		for _, q := range quotes {
			if strings.HasPrefix(reply, q.open) && strings.HasSuffix(reply, q.close) {
				reply = strings.TrimSuffix(strings.TrimPrefix(reply, q.open), q.close)
				reply = strings.TrimSpace(reply)
				break
			}
		}
	}

	if len(reply) > 2800 {
		cut := 2800
		// Never split a multibyte character.
		for cut > 0 && !utf8.RuneStart(reply[cut]) {
			cut--
		}
		reply = reply[:cut] + "\n\n[truncated]"
	}
	return reply
}

func truncateBody(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}

// RedactKey shortens a credential to a loggable prefix. Never log raw keys.
func RedactKey(key string) string {
	if key == "" {
		return "none"
	}
	if len(key) <= 5 {
		return key + "..."
	}
	return key[:5] + "..."
}
