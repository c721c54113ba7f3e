package config

const (
	// MaxProjectTitleLength fits PostgreSQL VARCHAR(255)
	MaxProjectTitleLength = 255

	// MaxTaskTitleLength fits PostgreSQL VARCHAR(255)
	MaxTaskTitleLength = 255

	// MaxDescriptionLength caps project and task descriptions
	MaxDescriptionLength = 10000

	// MaxSchedulingNotesLength caps ai_scheduling_notes on tasks
	MaxSchedulingNotesLength = 2000
)

const (
	// MaxPromptTitleLength fits PostgreSQL VARCHAR(255)
	MaxPromptTitleLength = 255

	// MaxPromptContentLength caps prompt bodies
	MaxPromptContentLength = 20000

	// MaxPromptTagLength caps each prompt tag
	MaxPromptTagLength = 64
)
