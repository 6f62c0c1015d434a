package trustdocs

import "testing"

func TestParseHex(t *testing.T) {
	cases := map[string]Color{
		"#e6f2ff": {0xe6, 0xf2, 0xff},
		"4A4A4A":  {0x4a, 0x4a, 0x4a},
		" #000000": Black,
	}
	for in, want := range cases {
		got, err := ParseHex(in)
		if err != nil || got != want {
			t.Fatalf("ParseHex(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := MustHex("#1a1a1a")
	if c.Hex() != "#1a1a1a" {
		t.Fatalf("unexpected hex %q", c.Hex())
	}
}

func TestMustHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustHex("nope")
}

func TestColorByName(t *testing.T) {
	cases := map[string]Color{
		"black":      Black,
		"Gray":       Grey,
		"grey":       Grey,
		"WhiteSmoke": WhiteSmoke,
		"white":      White,
		"#808080":    Grey,
	}
	for in, want := range cases {
		got, err := ColorByName(in)
		if err != nil || got != want {
			t.Fatalf("ColorByName(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ColorByName("chartreuse"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}
