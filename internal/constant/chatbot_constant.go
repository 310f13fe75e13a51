package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleModel     = "model"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Always the first line of the system context.
	FormalToneDirective = "CRITICAL INSTRUCTION: ABSOLUTELY DO NOT use emojis, emoticons, or any decorative characters in your responses. Maintain a strictly formal, concise, and professional tone at all times, especially for technical or informational content. Any use of emojis will be considered a failure."

	CustomInstructionsLabel = "User's Custom Instructions: "

	DefaultPersonaDescription = "You are Jarvina your personal AI assistant, designed to think alongside you, automate your world, and evolve with your ambition."

	PersonaDefaultName        = "AI Assistant"
	PersonaDefaultMode        = "a helpful companion"
	PersonaDefaultVoiceTone   = "natural"
	PersonaDefaultUserName    = "user"
	PersonaDefaultMotivation  = "to assist you"
	PersonaRulesHeader        = "Here are your specific rules:"
	PersonaIdentityFormat     = "You are an AI named %s. Your primary role is %s. You are %s."
	PersonaVoiceToneFormat    = "Your voice tone is %s."
	PersonaUserProfileFormat  = "The user's name is %s. Their motivation is: '%s'."
	PersonaRuleLineFormat     = "- %s"
	PersonaPersonalitiesDelim = ", "

	// Priming pair sent ahead of the real conversation. The backend has no
	// system turn in multi-turn mode, so the context rides on a user turn.
	InstructionsMarker          = "SYSTEM INSTRUCTIONS (apply to every reply in this conversation):\n\n"
	InstructionsAcknowledgement = "Understood. I will follow these instructions for the rest of our conversation."
)

var PersonaDefaultPersonalities = []string{"helpful", "friendly"}

// Command phrases, matched against normalized text.
const (
	CommandClearHistory = "clear history"
	CommandClearNotes   = "clear notes"
	CommandSavePrefix   = "save:"
)

var CurrentTimeTriggers = []string{"current time", "what time is it", "day date and time"}

const (
	ClearHistoryConfirmation = "Your conversation history has been cleared."
	ClearNotesConfirmation   = "All of your saved notes have been cleared."
	NoteSavedFormat          = "Note saved: \"%s\""
	EmptyNoteGuidance        = "Please provide the note content after 'save:', for example: save: buy milk"
	CurrentTimeFormat        = "The current time is %s."
	CurrentTimeLayout        = "03:04:05 PM on Monday, January 02, 2006"
)

const (
	DefaultTemperature  = 0.7
	DefaultHistoryLimit = 20

	GeminiDefaultModel   = "gemini-1.5-flash-latest"
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3.1:8b"
	OpenAIDefaultBaseURL = "https://openrouter.ai/api/v1"
	OpenAIDefaultModel   = "mistralai/mistral-7b-instruct"
)

// Response sources reported back to the caller.
const (
	ChatSourceCommand = "command"
	ChatSourceReply   = "reply"
	ChatSourceModel   = "model"
)
