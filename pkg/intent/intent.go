// Package intent turns free-form user text into a structured CampaignIntent
// using a single LLM extraction call validated against a JSON Schema.
package intent

// Channel is a content-delivery medium for a campaign.
type Channel string

const (
	ChannelEmail  Channel = "email"
	ChannelSocial Channel = "social"
	ChannelPPC    Channel = "ppc"
	ChannelSMS    Channel = "sms"
)

// AllChannels lists every recognized channel literal.
func AllChannels() []Channel {
	return []Channel{ChannelEmail, ChannelSocial, ChannelPPC, ChannelSMS}
}

// Valid reports whether c is one of the recognized channel literals.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSocial, ChannelPPC, ChannelSMS:
		return true
	}
	return false
}

// ContentSpec describes the messaging the user wants across channels.
type ContentSpec struct {
	Tone         string `json:"tone,omitempty"`
	KeyMessage   string `json:"key_message"`
	CallToAction string `json:"call_to_action,omitempty"`
}

// AudienceCriteria describes who the campaign should target.
type AudienceCriteria struct {
	Demographics string `json:"demographics,omitempty"`
	Interests    string `json:"interests,omitempty"`
	Location     string `json:"location,omitempty"`
}

// Schedule holds the requested campaign window. Dates are kept as the strings
// the model produced; parsing them is a launch-time concern.
type Schedule struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
}

// CampaignIntent is the structured representation of a user's marketing
// request, produced by the parser. It is transient: it is never persisted
// on its own, only folded into a campaign record.
type CampaignIntent struct {
	Goal                   string           `json:"goal"`
	Channels               []Channel        `json:"channels,omitempty"`
	ContentSpec            ContentSpec      `json:"content_spec"`
	AudienceCriteria       AudienceCriteria `json:"audience_criteria"`
	Budget                 *float64         `json:"budget,omitempty"`
	Schedule               *Schedule        `json:"schedule,omitempty"`
	NeedsClarification     bool             `json:"needs_clarification"`
	ClarificationQuestions []string         `json:"clarification_questions,omitempty"`
}

// Message is one turn of conversation context fed into the parser.
type Message struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}
