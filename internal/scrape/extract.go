// Package scrape pulls the machine-readable payloads out of the controller's
// human-oriented pages and decodes them into typed values. The pages embed a
// single assignment of the form `key = "v1,v2,...,vN"`; everything else on
// the page is presentation and is ignored.
package scrape

import (
	"fmt"
	"regexp"
	"sync"
)

// Compiled patterns are memoized per key; compilation is expensive relative
// to how often each key is looked up.
var (
	patternsMu sync.RWMutex
	patterns   = make(map[string]*regexp.Regexp)
)

func pattern(key string) *regexp.Regexp {
	patternsMu.RLock()
	re := patterns[key]
	patternsMu.RUnlock()
	if re != nil {
		return re
	}

	re = regexp.MustCompile(regexp.QuoteMeta(key) + ` = "([^"]*)"`)
	patternsMu.Lock()
	patterns[key] = re
	patternsMu.Unlock()
	return re
}

// MalformedDocumentError reports that the expected key assignment was not
// found in a controller page. It is not worth retrying: the controller
// served an unexpected document (firmware mismatch, captive portal,
// truncated response).
type MalformedDocumentError struct {
	Key string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document: no %q assignment found", e.Key)
}

// Extract returns the quoted payload of the `key = "..."` assignment
// embedded in doc. The key is expected to appear exactly once and the
// payload to contain no escaped quotes.
func Extract(doc, key string) (string, error) {
	m := pattern(key).FindStringSubmatch(doc)
	if m == nil {
		return "", &MalformedDocumentError{Key: key}
	}
	return m[1], nil
}
