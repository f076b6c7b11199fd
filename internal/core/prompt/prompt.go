// Package prompt builds LLM prompt messages from windowed mail and calendar data.
// Pure construction, no clocks and no network; callers supply display strings
// already formatted for the org's zone
package prompt

import (
	"fmt"
	"strings"

	pstr "daybrief/internal/platform/strings"
)

// Chat roles, mirrored by the llm adapter's wire shape
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prompt turn
type Message struct {
	Role    string
	Content string
}

// EventItem is a calendar row ready for prompting
type EventItem struct {
	Subject   string
	StartText string
	EndText   string
	Location  string
	Organizer string
	AllDay    bool
	Cancelled bool
}

// MailItem is a mailbox row ready for prompting
type MailItem struct {
	Subject   string
	From      string
	TimeText  string
	Preview   string
	Unread    bool
	Important bool
}

// ReplyContext is the original message a draft responds to
type ReplyContext struct {
	Subject string
	From    string
	Body    string
}

// BriefingData is everything a briefing or query prompt needs
type BriefingData struct {
	DateText  string
	ZoneLabel string
	UserName  string
	Events    []EventItem
	Messages  []MailItem
}

const (
	maxPreviewRunes = 240
	maxBodyRunes    = 4000
)

// Briefing builds a two message prompt asking for a morning briefing
func Briefing(d BriefingData) []Message {
	return []Message{
		{Role: RoleSystem, Content: briefingSystem},
		{Role: RoleUser, Content: renderDay(d) + "\nWrite a short morning briefing for this day. " +
			"Lead with what needs attention first, then the schedule, then notable mail."},
	}
}

// Query builds a prompt answering a free-form question over the same day context
func Query(d BriefingData, question string) []Message {
	return []Message{
		{Role: RoleSystem, Content: querySystem},
		{Role: RoleUser, Content: renderDay(d) + "\nQuestion: " + clip(strings.TrimSpace(question), maxPreviewRunes)},
	}
}

// Draft builds a prompt drafting a reply to one message.
// tone may be empty; instructions say what the reply should accomplish
func Draft(m ReplyContext, instructions, tone string) []Message {
	var b strings.Builder
	b.WriteString("Original message:\n")
	fmt.Fprintf(&b, "From: %s\n", pstr.FoldASCII(m.From))
	fmt.Fprintf(&b, "Subject: %s\n", pstr.FoldASCII(m.Subject))
	b.WriteString(clip(m.Body, maxBodyRunes))
	b.WriteString("\n\nWrite a reply. ")
	if ins := strings.TrimSpace(instructions); ins != "" {
		b.WriteString(ins)
		if !strings.HasSuffix(ins, ".") {
			b.WriteString(".")
		}
		b.WriteString(" ")
	}
	if tone != "" {
		fmt.Fprintf(&b, "Keep the tone %s. ", tone)
	}
	b.WriteString("Return only the reply body, no subject line.")

	return []Message{
		{Role: RoleSystem, Content: draftSystem},
		{Role: RoleUser, Content: b.String()},
	}
}

const (
	briefingSystem = "You are a concise executive assistant. You summarize a person's workday " +
		"from their calendar and inbox. Be specific, skip filler, never invent items."
	querySystem = "You are a concise executive assistant. Answer questions using only the " +
		"calendar and mail context provided. Say so plainly when the context does not contain the answer."
	draftSystem = "You draft email replies on behalf of a busy professional. Match the sender's " +
		"formality, keep it brief, and never fabricate commitments."
)

// renderDay renders the shared day context block used by Briefing and Query
func renderDay(d BriefingData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day: %s (%s)\n", d.DateText, d.ZoneLabel)
	if d.UserName != "" {
		fmt.Fprintf(&b, "For: %s\n", pstr.FoldASCII(d.UserName))
	}

	b.WriteString("\nCalendar:\n")
	if len(d.Events) == 0 {
		b.WriteString("(no events)\n")
	}
	for _, e := range d.Events {
		b.WriteString(renderEvent(e))
	}

	b.WriteString("\nMail:\n")
	if len(d.Messages) == 0 {
		b.WriteString("(no mail)\n")
	}
	for _, m := range d.Messages {
		b.WriteString(renderMail(m))
	}
	return b.String()
}

func renderEvent(e EventItem) string {
	var b strings.Builder
	b.WriteString("- ")
	switch {
	case e.AllDay:
		b.WriteString("all day")
	case e.EndText != "":
		fmt.Fprintf(&b, "%s to %s", e.StartText, e.EndText)
	default:
		b.WriteString(e.StartText)
	}
	fmt.Fprintf(&b, "  %s", pstr.FoldASCII(e.Subject))
	if e.Location != "" {
		fmt.Fprintf(&b, " (%s)", pstr.FoldASCII(e.Location))
	}
	if e.Organizer != "" {
		fmt.Fprintf(&b, ", organized by %s", pstr.FoldASCII(e.Organizer))
	}
	if e.Cancelled {
		b.WriteString(" [cancelled]")
	}
	b.WriteString("\n")
	return b.String()
}

func renderMail(m MailItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s  From %s: %s", m.TimeText, pstr.FoldASCII(m.From), pstr.FoldASCII(m.Subject))
	if p := strings.TrimSpace(m.Preview); p != "" {
		fmt.Fprintf(&b, " | %s", clip(p, maxPreviewRunes))
	}
	var tags []string
	if m.Unread {
		tags = append(tags, "unread")
	}
	if m.Important {
		tags = append(tags, "important")
	}
	if len(tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(tags, ", "))
	}
	b.WriteString("\n")
	return b.String()
}

// clip bounds s to n runes so one giant body cannot blow the prompt budget
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
