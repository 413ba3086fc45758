package conversation

import (
	"regexp"
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
)

var (
	viewIntentRe    = regexp.MustCompile(`(?i)(перегляд|огляд|показ|зустріч)`)
	likeIntentRe    = regexp.MustCompile(`(?i)(сподобал[асьоі]?|сподобавс[яі]|подоба(є|ется)|понравил[асьо]|лайк)`)
	contactIntentRe = regexp.MustCompile(`(?i)(зв.?яз(ат|ж)\p{L}*|подзвон\p{L}*|зателефон\p{L}*|контакт|ріелтор|рієлтор)`)

	explicitIDRe = regexp.MustCompile(`(?i)\bID[:\s]*([0-9]{3,})\b`)
	bareIDRe     = regexp.MustCompile(`\b([0-9]{4,})\b`)

	moreRe = regexp.MustCompile(`(?i)^(ще|еще)[.!]*$`)
)

// DetectIntent classifies a browsing message. View wins over like, like over
// contact.
func DetectIntent(text string) (entity.BookingIntent, bool) {
	switch {
	case viewIntentRe.MatchString(text):
		return entity.IntentView, true
	case likeIntentRe.MatchString(text):
		return entity.IntentLike, true
	case contactIntentRe.MatchString(text):
		return entity.IntentContact, true
	default:
		return "", false
	}
}

// ListingIDFrom finds a listing id in the message itself or, failing that,
// an explicit "ID 123" marker in the message it replies to.
func ListingIDFrom(text, replyTo string) string {
	if m := explicitIDRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := bareIDRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := explicitIDRe.FindStringSubmatch(replyTo); m != nil {
		return m[1]
	}
	return ""
}

// IsMore reports whether the message asks for the next page.
func IsMore(text string) bool {
	return moreRe.MatchString(strings.TrimSpace(text))
}
