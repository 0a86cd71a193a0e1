package cli

import (
	"os"
	"unicode/utf8"
)

// InputHandler reads raw keyboard input from stdin and translates it
// into key names for the surface's key handler. Printable keys map to
// their text, special keys to names like "Enter" and "ArrowLeft".
type InputHandler struct {
	surface *Surface
	stop    chan struct{}
}

// NewInputHandler creates an input handler delivering keys to the
// given surface.
func NewInputHandler(surface *Surface) *InputHandler {
	return &InputHandler{
		surface: surface,
		stop:    make(chan struct{}),
	}
}

// InputLoop reads and processes input from stdin until Stop is called
// or stdin closes. The terminal must already be in raw mode.
func (h *InputHandler) InputLoop() {
	buf := make([]byte, 256)

	for {
		select {
		case <-h.stop:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		h.processInput(buf[:n])
	}
}

// Stop makes the input loop exit after its current read returns.
func (h *InputHandler) Stop() {
	close(h.stop)
}

func (h *InputHandler) processInput(data []byte) {
	for i := 0; i < len(data); {
		b := data[i]

		if b == 0x1b {
			key, consumed := parseEscape(data[i:])
			if key != "" {
				h.dispatch(key)
			}
			i += consumed
			continue
		}

		switch b {
		case '\r', '\n':
			h.dispatch("Enter")
			i++
		case '\t':
			h.dispatch("Tab")
			i++
		case 0x7f, 0x08:
			h.dispatch("Backspace")
			i++
		default:
			if b < 0x20 {
				i++
				continue
			}
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size == 1 {
				i++
				continue
			}
			h.dispatch(string(r))
			i += size
		}
	}
}

func (h *InputHandler) dispatch(key string) {
	if fn := h.surface.onKey; fn != nil {
		fn(key)
	}
}

// parseEscape decodes an escape sequence at the start of data and
// returns the key name plus the number of bytes consumed. A lone ESC
// is the Escape key.
func parseEscape(data []byte) (string, int) {
	if len(data) == 1 {
		return "Escape", 1
	}

	switch data[1] {
	case '[':
		return parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return "Escape", 1
		}
		switch data[2] {
		case 'P':
			return "F1", 3
		case 'Q':
			return "F2", 3
		case 'R':
			return "F3", 3
		case 'S':
			return "F4", 3
		case 'H':
			return "Home", 3
		case 'F':
			return "End", 3
		}
		return "", 3
	}
	return "Escape", 1
}

func parseCSI(data []byte) (string, int) {
	// Find the final byte of the CSI sequence.
	end := 2
	for end < len(data) && (data[end] == ';' || (data[end] >= '0' && data[end] <= '9')) {
		end++
	}
	if end >= len(data) {
		return "", len(data)
	}

	final := data[end]
	params := string(data[2:end])
	consumed := end + 1

	switch final {
	case 'A':
		return "ArrowUp", consumed
	case 'B':
		return "ArrowDown", consumed
	case 'C':
		return "ArrowRight", consumed
	case 'D':
		return "ArrowLeft", consumed
	case 'H':
		return "Home", consumed
	case 'F':
		return "End", consumed
	case 'Z':
		return "Tab", consumed
	case '~':
		switch params {
		case "1", "7":
			return "Home", consumed
		case "2":
			return "Insert", consumed
		case "3":
			return "Delete", consumed
		case "4", "8":
			return "End", consumed
		case "5":
			return "PageUp", consumed
		case "6":
			return "PageDown", consumed
		}
		return "", consumed
	}
	return "", consumed
}
