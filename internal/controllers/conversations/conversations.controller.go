package conversationController

import (
	"agency/internal/logger"
	"agency/internal/repositories"
	"fmt"
	"slices"
	"strings"
)

type Label struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type Message struct {
	ID          int    `json:"id"`
	Sender      string `json:"sender"`
	Content     string `json:"content"`
	Timestamp   string `json:"timestamp"`
	Mood        Label  `json:"mood"`
	Action      string `json:"action"`
	OutcomeHint Label  `json:"outcome_hint"`
}

type MoodPoint struct {
	Timestamp  string  `json:"timestamp"`
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
}

type Metadata struct {
	LeadID     int    `json:"lead_id"`
	CustomerID int    `json:"customer_id"`
	AgentType  string `json:"agent_type"`
	Channel    string `json:"channel"`
	Language   string `json:"language"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type Conversation struct {
	ConversationID int         `json:"conversation_id"`
	Metadata       Metadata    `json:"metadata"`
	Messages       []Message   `json:"messages"`
	Summary        string      `json:"summary"`
	MoodTimeline   []MoodPoint `json:"mood_timeline"`
	Tasks          []string    `json:"tasks"`
}

type Foresight struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Explain    string  `json:"explain"`
}

type Foresights struct {
	Foresights []Foresight `json:"foresights"`
	Stored     bool        `json:"stored"`
}

type ConversationController struct {
	conversations map[string]Conversation
	foresights    map[string][]Foresight
	log           logger.Logger
}

func New() *ConversationController {
	return &ConversationController{
		conversations: conversationFixtures,
		foresights:    foresightFixtures,
		log:           logger.New("ConversationController"),
	}
}

func (cc *ConversationController) GetConversations() []Conversation {
	ids := make([]string, 0, len(cc.conversations))
	for id := range cc.conversations {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	conversations := make([]Conversation, 0, len(ids))
	for _, id := range ids {
		conversations = append(conversations, cc.conversations[id])
	}
	return conversations
}

func (cc *ConversationController) GetConversation(id string) (Conversation, error) {
	conversation, ok := cc.conversations[strings.TrimSpace(id)]
	if !ok {
		cc.log.Function("GetConversation").Debug("conversation not found", "conversationID", id)
		return Conversation{}, fmt.Errorf("conversation %s: %w", id, repositories.ErrNotFound)
	}
	return conversation, nil
}

// GetForesights answers for any id; unknown conversations get the standard engagement reading.
func (cc *ConversationController) GetForesights(id string) Foresights {
	foresights, ok := cc.foresights[strings.TrimSpace(id)]
	if !ok {
		foresights = defaultForesights
	}
	return Foresights{Foresights: slices.Clone(foresights), Stored: true}
}

// ActiveCount reports fixtures whose status is active.
func (cc *ConversationController) ActiveCount() int {
	count := 0
	for _, conversation := range cc.conversations {
		if conversation.Metadata.Status == "active" {
			count++
		}
	}
	return count
}
