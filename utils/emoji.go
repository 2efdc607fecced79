package utils

const (
	EmojiTada        = "🎉"
	EmojiLoudspeaker = "🔊"
	EmojiWarning     = "⚠️"
	EmojiCalendar    = "📅"
)
