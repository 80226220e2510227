package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"smilescript/backend/internal/service/ai"
)

func TestFallbackSummary_Deterministic(t *testing.T) {
	transcript := "Office calling to confirm your appointment tomorrow at 2 PM."

	first := ai.FallbackSummary(transcript)
	second := ai.FallbackSummary(transcript)

	require.NotEmpty(t, first)
	require.Equal(t, first, second, "same transcript must yield the same summary")
}

func TestFallbackSummary_ShortTranscript(t *testing.T) {
	summary := ai.FallbackSummary("Patient asked about flossing.")
	require.Equal(t, "Summary of: Patient asked about flossing.", summary)
}

func TestFallbackSummary_LongTranscriptTruncated(t *testing.T) {
	transcript := strings.Repeat("a", 80)

	summary := ai.FallbackSummary(transcript)

	require.Equal(t, "Summary of: "+strings.Repeat("a", 50)+"...", summary)
}

func TestFallbackSummary_MultiByteBoundary(t *testing.T) {
	transcript := strings.Repeat("牙", 60)

	summary := ai.FallbackSummary(transcript)

	require.Equal(t, "Summary of: "+strings.Repeat("牙", 50)+"...", summary)
}
