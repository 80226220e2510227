package ai

// fallbackDigestLen is the number of leading transcript characters kept in
// the fallback digest.
const fallbackDigestLen = 50

// FallbackSummary deterministically derives a short digest from a transcript.
// Same transcript in, same summary out: it is the availability fallback when
// no provider is configured or the provider call fails, so it must never
// depend on randomness or external state. Never empty for non-empty input.
func FallbackSummary(transcript string) string {
	runes := []rune(transcript)
	if len(runes) > fallbackDigestLen {
		return "Summary of: " + string(runes[:fallbackDigestLen]) + "..."
	}
	return "Summary of: " + transcript
}
