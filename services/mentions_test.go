package services

import (
	"reflect"
	"testing"
)

func TestExtractMentions(t *testing.T) {
	t.Run("no mentions", func(t *testing.T) {
		if got := ExtractMentions("all fine"); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("single mention", func(t *testing.T) {
		got := ExtractMentions("ok @maria")
		if !reflect.DeepEqual(got, []string{"maria"}) {
			t.Fatalf("expected [maria], got %v", got)
		}
	})

	t.Run("repeated mention counted once", func(t *testing.T) {
		got := ExtractMentions("ok @maria @maria")
		if !reflect.DeepEqual(got, []string{"maria"}) {
			t.Fatalf("expected [maria], got %v", got)
		}
	})

	t.Run("multiple mentions keep first-seen order", func(t *testing.T) {
		got := ExtractMentions("@pedro revisa con @maria y @pedro")
		if !reflect.DeepEqual(got, []string{"pedro", "maria"}) {
			t.Fatalf("expected [pedro maria], got %v", got)
		}
	})
}

func TestNewMentions(t *testing.T) {
	t.Run("added mention reported", func(t *testing.T) {
		got := NewMentions("ok", "ok @maria")
		if !reflect.DeepEqual(got, []string{"maria"}) {
			t.Fatalf("expected [maria], got %v", got)
		}
	})

	t.Run("surviving mention not re-reported", func(t *testing.T) {
		if got := NewMentions("ok @maria", "ok @maria @maria"); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("removed then re-added in a later update reported again", func(t *testing.T) {
		// First update removes the mention.
		if got := NewMentions("ok @maria", "ok"); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
		// A later update re-adding it counts as new.
		got := NewMentions("ok", "ok @maria")
		if !reflect.DeepEqual(got, []string{"maria"}) {
			t.Fatalf("expected [maria], got %v", got)
		}
	})
}
