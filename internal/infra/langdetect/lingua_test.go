package langdetect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	detector := NewDetector()

	language, ok := detector.Detect("The committee published its annual report on renewable energy investments yesterday.")
	require.True(t, ok)
	require.Equal(t, "English", language)

	language, ok = detector.Detect("Die Bundesregierung hat gestern einen neuen Bericht über erneuerbare Energien veröffentlicht.")
	require.True(t, ok)
	require.Equal(t, "German", language)
}

func TestDetectBlank(t *testing.T) {
	_, ok := NewDetector().Detect("   ")
	require.False(t, ok)
}
