package event

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// KeyCode identifies a keyboard key.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune // Printable character in Key.Rune
)

var keyNames = map[KeyCode]string{
	KeyUnknown:   "unknown",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlD:     "ctrl+d",
}

// Key is a decoded key press.
type Key struct {
	Code KeyCode
	Rune rune // Only valid when Code == KeyRune
}

// RuneKey returns the Key for a printable character.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// String returns a short human-readable key name.
func (k Key) String() string {
	if k.Code == KeyRune {
		return fmt.Sprintf("%q", k.Rune)
	}
	if name, ok := keyNames[k.Code]; ok {
		return name
	}
	return "unknown"
}

// IsQuit reports whether the key ends the session: Escape, 'q' or 'Q'.
func (k Key) IsQuit() bool {
	switch k.Code {
	case KeyEscape:
		return true
	case KeyRune:
		return k.Rune == 'q' || k.Rune == 'Q'
	}
	return false
}

// KeyReader decodes keys from raw terminal input.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader over r, which should be a terminal in raw mode.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey blocks until one key has been decoded.
func (k *KeyReader) ReadKey() (Key, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch b {
	case 0x03:
		return Key{Code: KeyCtrlC}, nil
	case 0x04:
		return Key{Code: KeyCtrlD}, nil
	case 0x09:
		return Key{Code: KeyTab}, nil
	case 0x0D, 0x0A:
		return Key{Code: KeyEnter}, nil
	case 0x7F, 0x08:
		return Key{Code: KeyBackspace}, nil
	case 0x1B:
		return k.readEscapeSequence()
	}

	if b >= 0x20 && b < 0x7F {
		return RuneKey(rune(b)), nil
	}
	if b >= 0xC0 {
		return k.readUTF8(b)
	}
	return Key{Code: KeyUnknown}, nil
}

// readEscapeSequence separates a lone Escape from CSI/SS3 sequences. A lone
// Escape is only recognised when nothing else is buffered behind it.
func (k *KeyReader) readEscapeSequence() (Key, error) {
	if k.reader.Buffered() == 0 {
		return Key{Code: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return Key{Code: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return Key{Code: KeyEscape}, nil
	}
	return k.parseCSI()
}

func (k *KeyReader) parseCSI() (Key, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return Key{Code: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return Key{Code: KeyUp}, nil
	case 'B':
		return Key{Code: KeyDown}, nil
	case 'C':
		return Key{Code: KeyRight}, nil
	case 'D':
		return Key{Code: KeyLeft}, nil
	}

	// Unknown sequence: swallow parameters up to the final byte.
	final := b
	for !isFinalByte(final) && k.reader.Buffered() > 0 {
		final, _ = k.reader.ReadByte()
	}
	return Key{Code: KeyUnknown}, nil
}

func isFinalByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}

func (k *KeyReader) readUTF8(first byte) (Key, error) {
	var buf [4]byte
	buf[0] = first

	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return Key{Code: KeyUnknown}, nil
	}

	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return Key{Code: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return Key{Code: KeyUnknown}, nil
	}
	return RuneKey(r), nil
}
