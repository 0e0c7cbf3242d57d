package utility

import (
	"golang.org/x/text/encoding/simplifiedchinese"
)

// GBKToUTF8 converts vendor diagnostic bytes from GBK to UTF-8. Conversion is
// best-effort: an empty input yields an empty string, and any decode failure
// falls back to reinterpreting the raw bytes, so a malformed message can never
// stall the pipeline.
func GBKToUTF8(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	out, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
