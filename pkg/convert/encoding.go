package convert

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Decode wraps r so it yields UTF-8 from the named encoding. The stock
// IPAdic sources ship in EUC-JP.
func Decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf8", "utf-8":
		return r, nil
	case "eucjp", "euc-jp":
		return transform.NewReader(r, japanese.EUCJP.NewDecoder()), nil
	case "sjis", "shift-jis", "shiftjis":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", encoding)
}
