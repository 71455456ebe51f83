package detect

import "unicode"

// Messages of up to this many emoji and nothing else render oversized.
const maxBigEmoji = 3

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols and pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental pictographs
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended pictographs
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	}
	return false
}

// isEmojiModifier covers the joiners and modifiers that ride along with a
// base emoji and should neither count nor disqualify.
func isEmojiModifier(r rune) bool {
	switch {
	case r == 0x200D: // zero-width joiner
		return true
	case r == 0xFE0E || r == 0xFE0F: // variation selectors
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tones
		return true
	}
	return false
}

// EmojiOnly reports whether text consists of one to three emoji and
// nothing else besides whitespace. Such messages are rendered larger by
// the message view.
func EmojiOnly(text string) bool {
	count := 0
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
		case isEmojiModifier(r):
		case isEmojiRune(r):
			count++
			if count > maxBigEmoji {
				return false
			}
		default:
			return false
		}
	}
	return count > 0
}
