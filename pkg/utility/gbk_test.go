package utility

import (
	"strings"
	"testing"
)

func TestUtilityGBKToUTF8_Empty(t *testing.T) {
	if got := GBKToUTF8(nil); got != "" {
		t.Errorf("GBKToUTF8(nil) = %q, want empty", got)
	}
	if got := GBKToUTF8([]byte{}); got != "" {
		t.Errorf("GBKToUTF8(empty) = %q, want empty", got)
	}
}

func TestUtilityGBKToUTF8_ASCIIPassthrough(t *testing.T) {
	in := []byte("CTP:invalid login")
	if got := GBKToUTF8(in); got != "CTP:invalid login" {
		t.Errorf("GBKToUTF8(%q) = %q", in, got)
	}
}

func TestUtilityGBKToUTF8_Chinese(t *testing.T) {
	// GBK bytes for the characters of "cuo wu" (error).
	in := []byte{0xB4, 0xED, 0xCE, 0xF3}
	if got := GBKToUTF8(in); got != "错误" {
		t.Errorf("GBKToUTF8(%v) = %q, want %q", in, got, "错误")
	}
}

func TestUtilityGBKToUTF8_MalformedNeverPanics(t *testing.T) {
	inputs := [][]byte{
		{0x81},
		{0xFF, 0xFF, 0xFF},
		{0xB4}, // truncated lead byte
		{0x00, 0x81, 0x20},
	}
	for _, in := range inputs {
		got := GBKToUTF8(in)
		if got == "" {
			t.Errorf("GBKToUTF8(%v) returned empty string for non-empty input", in)
		}
	}
}

func TestUtilityGBKToUTF8_MixedASCIIAndChinese(t *testing.T) {
	in := append([]byte("error: "), 0xB4, 0xED, 0xCE, 0xF3)
	got := GBKToUTF8(in)
	if !strings.HasPrefix(got, "error: ") {
		t.Errorf("GBKToUTF8 mixed input = %q, want %q prefix", got, "error: ")
	}
	if !strings.HasSuffix(got, "错误") {
		t.Errorf("GBKToUTF8 mixed input = %q, want %q suffix", got, "错误")
	}
}
