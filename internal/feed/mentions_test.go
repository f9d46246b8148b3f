package feed

import (
	"reflect"
	"testing"
)

func TestExtractMentions_DedupCaseInsensitive(t *testing.T) {
	got := ExtractMentions("hey @Asha and @asha, ask @Rahul_99 about ch.5")
	want := []string{"asha", "rahul_99"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractMentions_NoMentions(t *testing.T) {
	if got := ExtractMentions("plain text, email a@b.c does count"); got == nil {
		t.Error("expected the email domain to register as a mention")
	}
	if got := ExtractMentions("nothing here"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestExtractMentions_LengthCap(t *testing.T) {
	// 30 chars; only the first 24 form the handle.
	got := ExtractMentions("@abcdefghijklmnopqrstuvwxyz0123")
	if len(got) == 0 {
		t.Fatal("expected a mention")
	}
	if len(got[0]) != 24 {
		t.Errorf("expected 24-char handle, got %d chars: %s", len(got[0]), got[0])
	}
}

func TestQueryAt_ActiveToken(t *testing.T) {
	text := "hello @As"
	query, start, ok := QueryAt(text, len(text))
	if !ok {
		t.Fatal("expected an active mention query")
	}
	if query != "As" || start != 6 {
		t.Errorf("expected query=As start=6, got query=%s start=%d", query, start)
	}
}

func TestQueryAt_RuneOffsets(t *testing.T) {
	// "héllo @as" is 9 runes but 10 bytes; the caret counts runes.
	query, start, ok := QueryAt("héllo @as", 9)
	if !ok {
		t.Fatal("expected an active mention query")
	}
	if query != "as" || start != 6 {
		t.Errorf("expected query=as start=6, got query=%s start=%d", query, start)
	}
}

func TestQueryAt_BareAt(t *testing.T) {
	query, _, ok := QueryAt("hello @", 7)
	if !ok {
		t.Fatal("caret right after @ should open an empty query")
	}
	if query != "" {
		t.Errorf("expected empty query, got %q", query)
	}
}

func TestQueryAt_NotActive(t *testing.T) {
	cases := []struct {
		text  string
		caret int
	}{
		{"hello @As ", 10}, // space ends the token
		{"hello", 5},       // no @ at all
		{"a@b", 3},         // @ mid-word
		{"", 0},
	}
	for _, c := range cases {
		if _, _, ok := QueryAt(c.text, c.caret); ok {
			t.Errorf("expected no query for %q caret %d", c.text, c.caret)
		}
	}
}

func TestCandidates_SubstringIgnoresCaseAndSpaces(t *testing.T) {
	members := []string{"Asha Verma", "Ashish", "Rahul", "Prakash"}
	got := Candidates(members, "as")
	want := []string{"Asha Verma", "Ashish", "Prakash"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCandidates_Cap(t *testing.T) {
	members := make([]string, 20)
	for i := range members {
		members[i] = "User" + string(rune('A'+i))
	}
	got := Candidates(members, "user")
	if len(got) != 8 {
		t.Errorf("expected 8 candidates, got %d", len(got))
	}
}

func TestComplete_InsertsHandleWithoutSpaces(t *testing.T) {
	text := "ping @As about this"
	// caret right after "@As"
	newText, caret := Complete(text, 8, "Asha Verma")
	want := "ping @AshaVerma  about this"
	if newText != want {
		t.Errorf("expected %q, got %q", want, newText)
	}
	wantCaret := len("ping @AshaVerma ")
	if caret != wantCaret {
		t.Errorf("expected caret %d, got %d", wantCaret, caret)
	}
}

func TestComplete_MultiByteTextBeforeCaret(t *testing.T) {
	newText, caret := Complete("héllo @as", 9, "Ashish")
	want := "héllo @Ashish "
	if newText != want {
		t.Errorf("expected %q, got %q", want, newText)
	}
	if wantCaret := 14; caret != wantCaret {
		t.Errorf("expected caret %d, got %d", wantCaret, caret)
	}
}

func TestComplete_NoActiveQueryLeavesTextAlone(t *testing.T) {
	text := "no mention here"
	newText, caret := Complete(text, 4, "Asha")
	if newText != text || caret != 4 {
		t.Errorf("expected unchanged text, got %q caret %d", newText, caret)
	}
}
