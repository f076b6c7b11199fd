package prompt

import (
	"strings"
	"testing"
)

func sampleDay() BriefingData {
	return BriefingData{
		DateText:  "Wednesday, January 15, 2025",
		ZoneLabel: "EST",
		UserName:  "Pat Doe",
		Events: []EventItem{
			{Subject: "Standup", StartText: "9:00 AM", EndText: "9:15 AM", Location: "Room 4", Organizer: "Ana Ruiz"},
			{Subject: "Offsite planning", AllDay: true},
		},
		Messages: []MailItem{
			{Subject: "Quarterly numbers", From: "Ana Ruiz", TimeText: "8:42 AM", Preview: "Draft attached", Unread: true, Important: true},
			{Subject: "Lunch?", From: "Sam Lee", TimeText: "11:03 AM"},
		},
	}
}

func TestBriefing_Structure(t *testing.T) {
	msgs := Briefing(sampleDay())

	if len(msgs) != 2 {
		t.Fatalf("len = %d want 2", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[1].Role != RoleUser {
		t.Fatalf("roles = %q %q", msgs[0].Role, msgs[1].Role)
	}

	u := msgs[1].Content
	for _, want := range []string{
		"Wednesday, January 15, 2025",
		"Pat Doe",
		"9:00 AM to 9:15 AM",
		"Standup",
		"(Room 4)",
		"all day",
		"8:42 AM",
		"Quarterly numbers",
		"[unread, important]",
	} {
		if !strings.Contains(u, want) {
			t.Fatalf("user message missing %q:\n%s", want, u)
		}
	}

	// the zone label appears exactly once, in the day header
	if n := strings.Count(u, "EST"); n != 1 {
		t.Fatalf("zone label count = %d want 1:\n%s", n, u)
	}

	// calendar section renders before mail
	if strings.Index(u, "Calendar:") > strings.Index(u, "Mail:") {
		t.Fatalf("calendar should precede mail:\n%s", u)
	}
}

func TestBriefing_EmptySections(t *testing.T) {
	msgs := Briefing(BriefingData{DateText: "Monday, June 2, 2025", ZoneLabel: "EDT"})
	u := msgs[1].Content
	if !strings.Contains(u, "(no events)") || !strings.Contains(u, "(no mail)") {
		t.Fatalf("missing empty markers:\n%s", u)
	}
}

func TestQuery_CarriesQuestionAndContext(t *testing.T) {
	msgs := Query(sampleDay(), "  When is my first meeting?  ")

	if len(msgs) != 2 {
		t.Fatalf("len = %d want 2", len(msgs))
	}
	u := msgs[1].Content
	if !strings.Contains(u, "Question: When is my first meeting?") {
		t.Fatalf("question not embedded trimmed:\n%s", u)
	}
	if !strings.Contains(u, "Standup") {
		t.Fatalf("day context missing:\n%s", u)
	}
}

func TestDraft_Structure(t *testing.T) {
	msgs := Draft(ReplyContext{
		Subject: "Résumé feedback",
		From:    "ana@corp.test",
		Body:    "Could you look at the attached draft before Friday?",
	}, "agree and propose Thursday afternoon", "friendly")

	if len(msgs) != 2 {
		t.Fatalf("len = %d want 2", len(msgs))
	}
	u := msgs[1].Content
	for _, want := range []string{
		// folded subject, no diacritics
		"Subject: Resume feedback",
		"From: ana@corp.test",
		"Could you look at the attached draft",
		"agree and propose Thursday afternoon.",
		"tone friendly",
		"no subject line",
	} {
		if !strings.Contains(u, want) {
			t.Fatalf("draft prompt missing %q:\n%s", want, u)
		}
	}
}

func TestDraft_OmitsEmptyToneAndInstructions(t *testing.T) {
	msgs := Draft(ReplyContext{Subject: "Hi", From: "x@y.test", Body: "short"}, "", "")
	u := msgs[1].Content
	if strings.Contains(u, "Keep the tone") {
		t.Fatalf("tone sentence should be absent:\n%s", u)
	}
}

func TestClip_BoundsLongBodies(t *testing.T) {
	long := strings.Repeat("a", maxBodyRunes+500)
	msgs := Draft(ReplyContext{Subject: "s", From: "f", Body: long}, "", "")
	u := msgs[1].Content
	if strings.Contains(u, strings.Repeat("a", maxBodyRunes+1)) {
		t.Fatalf("body not clipped")
	}
	if !strings.Contains(u, "...") {
		t.Fatalf("clip marker missing")
	}
}
