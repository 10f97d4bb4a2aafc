package topic

// Topic is one selectable emotion the user can start a conversation about.
type Topic struct {
	Name        string `json:"name" yaml:"name"`
	Emoji       string `json:"emoji" yaml:"emoji"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Seed provides the default emotion catalogue shown on the topic picker.
func Seed() []Topic {
	return []Topic{
		{Name: "기쁨", Emoji: "😊", Description: "좋은 일이 있어 마음이 밝은 상태"},
		{Name: "슬픔", Emoji: "😢", Description: "마음이 가라앉고 눈물이 날 것 같은 상태"},
		{Name: "화남", Emoji: "😠", Description: "억울하거나 분한 감정이 올라온 상태"},
		{Name: "불안", Emoji: "😰", Description: "걱정이 많고 마음이 조마조마한 상태"},
		{Name: "지침", Emoji: "😩", Description: "몸과 마음의 에너지가 바닥난 상태"},
		{Name: "혼란", Emoji: "😕", Description: "생각이 정리되지 않고 복잡한 상태"},
		{Name: "희망", Emoji: "🌈", Description: "앞으로 좋아질 것 같은 기대가 드는 상태"},
		{Name: "감사", Emoji: "🙏", Description: "고마운 마음이 가득한 상태"},
	}
}
