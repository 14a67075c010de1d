package warc

import (
	"bufio"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/fwojciec/wetclean"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/net/html/charset"
)

// IsHTTPResponse reports whether rec carries a captured HTTP response.
func IsHTTPResponse(rec *wetclean.Record) bool {
	if rec.Type != wetclean.RecordResponse {
		return false
	}
	mediaType, params, err := mime.ParseMediaType(rec.ContentType)
	return err == nil && mediaType == "application/http" && params["msgtype"] != "request"
}

// ReadHTMLResponse parses the HTTP response carried by a response record and
// returns its decoded body if the payload is HTML. ok is false for non-HTML
// payloads. Gzip content encoding is undone and the body is converted to
// UTF-8 from the charset named by the header, a BOM, or a meta tag.
func ReadHTMLResponse(rec *wetclean.Record, limit int64) (html []byte, ok bool, err error) {
	resp, err := http.ReadResponse(bufio.NewReader(rec.Body), nil)
	if err != nil {
		return nil, false, wetclean.Errorf(wetclean.EINVALID, "invalid HTTP response for %s: %v", rec.TargetURI, err)
	}
	defer resp.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "text/html" && mediaType != "application/xhtml+xml" {
		return nil, false, nil
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, false, fmt.Errorf("gzip body for %s: %w", rec.TargetURI, err)
		}
		defer gz.Close()
		body = gz
	}
	if limit > 0 {
		body = io.LimitReader(body, limit)
	}
	body, err = charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, false, fmt.Errorf("charset for %s: %w", rec.TargetURI, err)
	}

	html, err = io.ReadAll(body)
	if err != nil {
		return nil, false, fmt.Errorf("read body for %s: %w", rec.TargetURI, err)
	}
	return html, true, nil
}

var _ wetclean.HTMLDecoder = (*HTMLDecoder)(nil)

// HTMLDecoder implements wetclean.HTMLDecoder for WARC response records.
type HTMLDecoder struct {
	// Limit caps the decoded body size. Zero means no limit.
	Limit int64
}

// DecodeHTML returns the HTML payload of rec, if it carries one.
func (d *HTMLDecoder) DecodeHTML(rec *wetclean.Record) ([]byte, bool, error) {
	if !IsHTTPResponse(rec) {
		return nil, false, nil
	}
	return ReadHTMLResponse(rec, d.Limit)
}
