package ai

// GetSummarizePrompt returns the system prompt for call transcript summarization.
func GetSummarizePrompt() string {
	return "You are a dental clinic assistant. Summarize the following call transcript concisely."
}
