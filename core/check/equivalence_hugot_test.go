package check

import (
	"context"
	"testing"

	"github.com/siherrmann/nercheck/core/nlp"
	"github.com/siherrmann/nercheck/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the check against the distilbert-NER model, downloaded on first run
func TestCheckEquivalenceHugot(t *testing.T) {
	if testing.Short() {
		t.Skip("downloads the NER model")
	}
	ctx := context.Background()

	capability := nlp.NewHugot(model.DefaultLanguage, nil)
	t.Cleanup(func() { _ = capability.Close() })

	first, err := CheckEquivalence(ctx, capability, model.DefaultLanguage, model.SampleText)
	require.NoError(t, err)
	require.NotNil(t, first)

	t.Run("Sample text yields both people", func(t *testing.T) {
		assert.Equal(t, []string{"Donald Trump", "Hillary Clinton"}, first.PathA.Texts())
		for _, entity := range first.PathA {
			assert.Equal(t, "PER", entity.Label)
		}
		assert.True(t, first.PathA.Equal(first.PathB))
		assert.True(t, first.PathA.Equal(first.PathC))
	})

	t.Run("Second run agrees with the first", func(t *testing.T) {
		second, err := CheckEquivalence(ctx, capability, model.DefaultLanguage, model.SampleText)
		require.NoError(t, err)
		assert.True(t, first.PathA.Equal(second.PathA))
		assert.True(t, first.PathC.Equal(second.PathC))
	})
}
