package jobs

import (
	"strings"
	"testing"
)

func TestComposeMessage(t *testing.T) {
	job := Job{
		Kind: KindReminder,
		TemplateData: map[string]any{
			"patient_name": "Amara",
			"date":         "2026-03-02",
			"start_time":   "09:30",
		},
	}

	subject, body := composeMessage(job)
	if subject != "Appointment reminder" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "Amara") || !strings.Contains(body, "2026-03-02 09:30") {
		t.Fatalf("body = %q", body)
	}
}

func TestComposeMessage_Kinds(t *testing.T) {
	cases := []struct {
		kind    string
		subject string
	}{
		{KindConfirmation, "Appointment confirmed"},
		{KindCancellation, "Appointment cancelled"},
		{"unknown", "Appointment reminder"},
	}
	for _, tc := range cases {
		subject, _ := composeMessage(Job{Kind: tc.kind})
		if subject != tc.subject {
			t.Errorf("kind %s: subject = %q, want %q", tc.kind, subject, tc.subject)
		}
	}
}

func TestComposeMessage_NoName(t *testing.T) {
	_, body := composeMessage(Job{Kind: KindReminder, TemplateData: map[string]any{"date": "2026-03-02"}})
	if strings.Contains(body, "Hello") {
		t.Fatalf("greeting without a name: %q", body)
	}
}
