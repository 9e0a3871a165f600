// Package langmeta sniffs the declared language of an HTML page from
// its metadata: the lang attribute of the <html> element or a
// content-language meta tag. It never inspects the text itself.
package langmeta

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Language returns the declared language of a page, lowercased, and
// whether any declaration was found. The document is scanned only as
// far as needed; scanning stops at the end of <head>.
func Language(body []byte) (string, bool) {
	z := html.NewTokenizer(bytes.NewReader(body))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "html":
				if lang, ok := attr(tok, "lang"); ok {
					return strings.ToLower(lang), true
				}
				if lang, ok := attr(tok, "xml:lang"); ok {
					return strings.ToLower(lang), true
				}
			case "meta":
				if equiv, ok := attr(tok, "http-equiv"); ok &&
					strings.EqualFold(equiv, "content-language") {
					if content, ok := attr(tok, "content"); ok && content != "" {
						return strings.ToLower(content), true
					}
				}
			case "body":
				// Declarations live in <html> or <head>; stop here.
				return "", false
			}

		case html.EndTagToken:
			if tok := z.Token(); tok.Data == "head" {
				return "", false
			}
		}
	}
}

// IsEnglish reports whether a declared language marks the page as
// English. Undeclared languages return declared=false so the caller can
// decide how to treat unknown pages.
func IsEnglish(body []byte) (english, declared bool) {
	lang, ok := Language(body)
	if !ok {
		return false, false
	}
	return strings.HasPrefix(lang, "en"), true
}

func attr(tok html.Token, key string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
