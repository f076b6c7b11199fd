package mailapi

import (
	"fmt"
	"time"
)

// EmailAddress is a name and address pair
type EmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// Recipient wraps an EmailAddress the way the wire format does
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// ItemBody is a message or event body with its content type
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// ImportanceHigh marks a message flagged high importance by its sender
const ImportanceHigh = "high"

// Message is a partial mailbox message document with fields we use
type Message struct {
	ID               string      `json:"id"`
	Subject          string      `json:"subject"`
	BodyPreview      string      `json:"bodyPreview"`
	From             Recipient   `json:"from"`
	ToRecipients     []Recipient `json:"toRecipients"`
	ReceivedDateTime time.Time   `json:"receivedDateTime"`
	IsRead           bool        `json:"isRead"`
	Importance       string      `json:"importance"`
	HasAttachments   bool        `json:"hasAttachments"`
	ConversationID   string      `json:"conversationId"`
	WebLink          string      `json:"webLink"`
}

// MessageDetail is a Message plus its full body
type MessageDetail struct {
	Message
	Body ItemBody `json:"body"`
}

// DateTimeTimeZone is a wall clock timestamp tagged with its zone
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// wireClock is the zoneless wall clock layout event bounds arrive in.
// The API appends seven fractional digits; Go's parser accepts a fractional
// second after the seconds field without a layout marker
const wireClock = "2006-01-02T15:04:05"

// Time resolves the wall clock plus zone name into an absolute instant
func (d DateTimeTimeZone) Time() (time.Time, error) {
	loc := time.UTC
	if d.TimeZone != "" && d.TimeZone != "UTC" {
		l, err := time.LoadLocation(d.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("mailapi: unknown event zone %q", d.TimeZone)
		}
		loc = l
	}
	t, err := time.ParseInLocation(wireClock, d.DateTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("mailapi: bad event clock %q: %w", d.DateTime, err)
	}
	return t, nil
}

// Location is where an event happens
type Location struct {
	DisplayName string `json:"displayName"`
}

// Attendee is an event participant
type Attendee struct {
	EmailAddress EmailAddress `json:"emailAddress"`
	Type         string       `json:"type,omitempty"`
}

// Event type discriminators as the API reports them
const (
	EventSingleInstance = "singleInstance"
	EventOccurrence     = "occurrence"
	EventSeriesMaster   = "seriesMaster"
)

// Event is a partial calendar event document with fields we use.
// Series masters carry an RRULE string; list endpoints return what the
// API said and ExpandOccurrences materializes instances from it
type Event struct {
	ID               string           `json:"id"`
	Subject          string           `json:"subject"`
	BodyPreview      string           `json:"bodyPreview"`
	Start            DateTimeTimeZone `json:"start"`
	End              DateTimeTimeZone `json:"end"`
	Location         Location         `json:"location"`
	Attendees        []Attendee       `json:"attendees"`
	Organizer        Recipient        `json:"organizer"`
	IsAllDay         bool             `json:"isAllDay"`
	IsCancelled      bool             `json:"isCancelled"`
	IsOnlineMeeting  bool             `json:"isOnlineMeeting"`
	OnlineMeetingURL string           `json:"onlineMeetingUrl"`
	Type             string           `json:"type"`
	SeriesMasterID   string           `json:"seriesMasterId"`
	RecurrenceRule   string           `json:"recurrenceRule,omitempty"`
	WebLink          string           `json:"webLink"`
}

// Profile is the caller's mailbox profile
type Profile struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// Draft is an outbound message
type Draft struct {
	Subject      string      `json:"subject"`
	Body         ItemBody    `json:"body"`
	ToRecipients []Recipient `json:"toRecipients"`
	CcRecipients []Recipient `json:"ccRecipients,omitempty"`
}

// sendMailRequest is the wire envelope for POST /me/sendMail
type sendMailRequest struct {
	Message         Draft `json:"message"`
	SaveToSentItems bool  `json:"saveToSentItems"`
}

// listEnvelope is the wire envelope for collection responses
type listEnvelope[T any] struct {
	Value []T `json:"value"`
}
