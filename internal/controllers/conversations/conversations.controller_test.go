package conversationController

import (
	"agency/internal/repositories"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConversations_SortedByID(t *testing.T) {
	conversations := New().GetConversations()

	require.Len(t, conversations, 2)
	assert.Equal(t, 1001, conversations[0].ConversationID)
	assert.Equal(t, 1002, conversations[1].ConversationID)
}

func TestGetConversation(t *testing.T) {
	controller := New()

	conversation, err := controller.GetConversation("1001")
	require.NoError(t, err)
	assert.Len(t, conversation.Messages, 3)
	assert.Len(t, conversation.MoodTimeline, 3)
	assert.Equal(t, "renewal", conversation.Metadata.AgentType)

	_, err = controller.GetConversation("9999")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGetForesights(t *testing.T) {
	controller := New()

	known := controller.GetForesights("1002")
	assert.True(t, known.Stored)
	require.Len(t, known.Foresights, 3)
	assert.Equal(t, "New Customer Interest", known.Foresights[0].Label)

	unknown := controller.GetForesights("42")
	require.Len(t, unknown.Foresights, 1)
	assert.Equal(t, "Standard Engagement", unknown.Foresights[0].Label)
	assert.InDelta(t, 0.6, unknown.Foresights[0].Confidence, 0.0001)
}

func TestActiveCount(t *testing.T) {
	assert.Equal(t, 2, New().ActiveCount())
}
