package util

import (
	"reflect"
	"testing"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Baseboard MDF", want: "baseboard mdf"},
		{name: "punctuation", input: `Baseboard - 3 1/4" w/ "paint"`, want: "baseboard  3 14 w paint"},
		{name: "underscore kept", input: "TOE_KICK", want: "toe_kick"},
		{name: "unicode letters kept", input: "Café Névé", want: "café névé"},
		{name: "decomposed accents", input: "Cafe\u0301", want: "café"},
		{name: "no-break space", input: "Toe\u00a0Kick", want: "toe kick"},
		{name: "em space", input: "Sink\u2003double", want: "sink double"},
		{name: "tab and newline", input: "sink\tdouble\nbasin", want: "sink double basin"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestCleanTextSameForStoredAndInput(t *testing.T) {
	stored := CleanText("P-Trap assembly - ABS (plastic)")
	query := CleanText("p-trap")
	if query != "ptrap" {
		t.Fatalf("query=%q", query)
	}
	if stored != "ptrap assembly  abs plastic" {
		t.Fatalf("stored=%q", stored)
	}
}

func TestWords(t *testing.T) {
	got := Words("  Sink, faucet!!  ")
	want := []string{"sink", "faucet"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for _, input := range []string{"Sink\u00a0double", "Sink\u2003double", "sink\u3000double"} {
		if got := Words(input); !reflect.DeepEqual(got, []string{"sink", "double"}) {
			t.Fatalf("Words(%q)=%v", input, got)
		}
	}
	if len(Words("?!")) != 0 {
		t.Fatal("expected no words for punctuation-only input")
	}
}
