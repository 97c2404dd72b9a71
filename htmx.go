package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	hxRequestHeader    = "HX-Request"
	hxReplaceURLHeader = "HX-Replace-Url"
	hxTriggerHeader    = "HX-Trigger"
)

// isHTMXRequest reports whether the request was initiated by HTMX.
func isHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(hxRequestHeader), "true")
}

// setHXTrigger asks the client to dispatch event with detail once the
// response is swapped in.
func setHXTrigger(w http.ResponseWriter, event string, detail any) error {
	payload, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		return err
	}
	w.Header().Set(hxTriggerHeader, string(payload))
	return nil
}
