package services

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
)

// EncodeSession compresses raw log text and base64-encodes it into a compact
// ASCII token safe to carry in a URL fragment. Empty input encodes to the
// empty token.
func EncodeSession(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("failed to compress session text: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize session compression: %w", err)
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeSession reverses EncodeSession. An empty token decodes to empty text.
// Corrupt or truncated tokens (hand-edited URLs) return an error instead of
// panicking; callers treat that as "no shared state" and clear the token.
func DecodeSession(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	compressed, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", fmt.Errorf("failed to open session token: %w", err)
	}
	defer r.Close()

	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decompress session token: %w", err)
	}
	return string(text), nil
}
