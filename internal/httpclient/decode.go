package httpclient

import (
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// decodeBody unwraps gzip and brotli bodies. We send our own Accept-Encoding,
// so net/http leaves decompression to us.
func decodeBody(body io.Reader, contentEncoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if err == io.EOF {
			return strings.NewReader(""), nil
		}
		return zr, err
	case "br":
		return brotli.NewReader(body), nil
	default:
		return body, nil
	}
}

func isDecodedEncoding(contentEncoding string) bool {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip", "x-gzip", "br":
		return true
	}
	return false
}
