package assist

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Modes
type Mode string

const (
	ModeChat       Mode = "chat"
	ModeFlashcards Mode = "flashcards"
	ModeQuiz       Mode = "quiz"
	ModeMindmap    Mode = "mindmap"
)

var allModes = []Mode{ModeChat, ModeFlashcards, ModeQuiz, ModeMindmap}

func ValidMode(m Mode) bool {
	for _, v := range allModes {
		if m == v {
			return true
		}
	}
	return false
}

func validRole(role string) bool {
	return role == RoleUser || role == RoleAssistant || role == RoleSystem
}

// Message is one role-tagged entry of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation,omitempty"`
}

// Response is the mode-dependent result union: chat and mindmap modes fill
// Content (markdown), the other modes fill their structured field.
type Response struct {
	Content    string         `json:"content,omitempty"`
	Flashcards []Flashcard    `json:"flashcards,omitempty"`
	Quiz       []QuizQuestion `json:"quizData,omitempty"`
}
