package conversationController

var defaultForesights = []Foresight{
	{Label: "Standard Engagement", Confidence: 0.6, Explain: "No specific patterns detected in this conversation"},
}

var foresightFixtures = map[string][]Foresight{
	"1001": {
		{Label: "High Renewal Probability", Confidence: 0.92, Explain: "Customer showed 3 positive indicators vs 0 negative"},
		{Label: "High Engagement", Confidence: 0.8, Explain: "Customer provided detailed responses (45 total words)"},
		{Label: "Payment Intent", Confidence: 0.85, Explain: "Customer explicitly asked about payment options"},
	},
	"1002": {
		{Label: "New Customer Interest", Confidence: 0.88, Explain: "Customer actively seeking quotes and information"},
		{Label: "Auto Insurance Focus", Confidence: 0.95, Explain: "Clear preference for auto insurance coverage"},
		{Label: "Price Sensitive", Confidence: 0.75, Explain: "Customer immediately asked about rates"},
	},
}

var conversationFixtures = map[string]Conversation{
	"1001": {
		ConversationID: 1001,
		Metadata: Metadata{
			LeadID:     501,
			CustomerID: 201,
			AgentType:  "renewal",
			Channel:    "sms",
			Language:   "en",
			Status:     "active",
			CreatedAt:  "2024-01-15T10:30:00Z",
			UpdatedAt:  "2024-01-15T10:45:00Z",
		},
		Messages: []Message{
			{
				ID:          1,
				Sender:      "assistant",
				Content:     "Hi Sarah! This is Alex from Premier Insurance. I noticed your policy POL-INS-2024-001 is due for renewal on February 15th. Would you like to discuss your renewal options?",
				Timestamp:   "2024-01-15T10:30:00Z",
				Mood:        Label{Label: "neutral", Confidence: 0.6},
				Action:      "reply",
				OutcomeHint: Label{Label: "Needs Follow-up", Confidence: 0.7},
			},
			{
				ID:          2,
				Sender:      "customer",
				Content:     "Yes, I would like to renew my policy. How much will it cost?",
				Timestamp:   "2024-01-15T10:32:00Z",
				Mood:        Label{Label: "receptive", Confidence: 0.8},
				Action:      "request_payment",
				OutcomeHint: Label{Label: "Payment Promised", Confidence: 0.7},
			},
			{
				ID:          3,
				Sender:      "assistant",
				Content:     "Great! Your renewal premium will be $1,500, which is the same as last year. I can process this for you right now. Would you like to pay via credit card or bank transfer?",
				Timestamp:   "2024-01-15T10:33:00Z",
				Mood:        Label{Label: "helpful", Confidence: 0.9},
				Action:      "payment_processing",
				OutcomeHint: Label{Label: "Payment Processing", Confidence: 0.8},
			},
		},
		Summary: "Customer interested in renewal, discussed payment options",
		MoodTimeline: []MoodPoint{
			{Timestamp: "2024-01-15T10:30:00Z", Mood: "neutral", Confidence: 0.6},
			{Timestamp: "2024-01-15T10:32:00Z", Mood: "receptive", Confidence: 0.8},
			{Timestamp: "2024-01-15T10:33:00Z", Mood: "helpful", Confidence: 0.9},
		},
		Tasks: []string{},
	},
	"1002": {
		ConversationID: 1002,
		Metadata: Metadata{
			LeadID:     502,
			CustomerID: 202,
			AgentType:  "new",
			Channel:    "sms",
			Language:   "en",
			Status:     "active",
			CreatedAt:  "2024-01-15T11:00:00Z",
			UpdatedAt:  "2024-01-15T11:15:00Z",
		},
		Messages: []Message{
			{
				ID:          1,
				Sender:      "assistant",
				Content:     "Hello! I'm Alex from Premier Insurance. I understand you're interested in getting a new insurance policy. What type of coverage are you looking for?",
				Timestamp:   "2024-01-15T11:00:00Z",
				Mood:        Label{Label: "neutral", Confidence: 0.7},
				Action:      "reply",
				OutcomeHint: Label{Label: "Needs Follow-up", Confidence: 0.6},
			},
			{
				ID:          2,
				Sender:      "customer",
				Content:     "I need auto insurance for my new car. What are your rates?",
				Timestamp:   "2024-01-15T11:02:00Z",
				Mood:        Label{Label: "interested", Confidence: 0.8},
				Action:      "request_quote",
				OutcomeHint: Label{Label: "Quote Requested", Confidence: 0.9},
			},
		},
		Summary: "New customer inquiry for auto insurance",
		MoodTimeline: []MoodPoint{
			{Timestamp: "2024-01-15T11:00:00Z", Mood: "neutral", Confidence: 0.7},
			{Timestamp: "2024-01-15T11:02:00Z", Mood: "interested", Confidence: 0.8},
		},
		Tasks: []string{},
	},
}
