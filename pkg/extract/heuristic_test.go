package extract

import (
	"reflect"
	"testing"
)

func TestFromTextTitle(t *testing.T) {
	hints := FromText("Welcome to The Archive Hour podcast, glad you're here.")
	if hints.EpisodeTitle != "The Archive Hour" {
		t.Errorf("title = %q", hints.EpisodeTitle)
	}

	// First matching title wins.
	hints = FromText("Welcome to First Show podcast.\nThis is Second Show podcast.")
	if hints.EpisodeTitle != "First Show" {
		t.Errorf("title = %q", hints.EpisodeTitle)
	}

	hints = FromText("Just a transcript with no intro line.")
	if hints.EpisodeTitle != "" {
		t.Errorf("title = %q, want empty", hints.EpisodeTitle)
	}
}

func TestFromTextHostsAndGuests(t *testing.T) {
	text := "Hi everyone, I'm Alice Smith and this is the show.\n" +
		"Today we're joined by Bob Jones to talk about archives.\n" +
		"Bob Jones, welcome back."

	hints := FromText(text)

	if !reflect.DeepEqual(hints.Hosts, []string{"Alice Smith"}) {
		t.Errorf("hosts = %v", hints.Hosts)
	}
	// Bob Jones appears on two guest-cue lines but is listed once.
	if !reflect.DeepEqual(hints.Guests, []string{"Bob Jones"}) {
		t.Errorf("guests = %v", hints.Guests)
	}
}

func TestFromTextNoNamesOnCueLine(t *testing.T) {
	hints := FromText("I'm really happy about today's topic.")
	if len(hints.Hosts) != 0 {
		t.Errorf("hosts = %v, want none", hints.Hosts)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"Jane Doe", "John Roe", "Jane Doe"})
	if !reflect.DeepEqual(got, []string{"Jane Doe", "John Roe"}) {
		t.Errorf("Dedupe = %v", got)
	}
	if Dedupe(nil) != nil {
		t.Error("Dedupe(nil) must be nil")
	}
}
