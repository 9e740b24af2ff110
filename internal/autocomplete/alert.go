package autocomplete

import (
	"errors"

	"places-proxy/internal/gateway"
)

// Alert is a user-facing title and message for a failed action.
type Alert struct {
	Title   string
	Message string
}

const (
	msgNoMatches   = "No matching places found."
	msgUnreachable = "Unable to reach the server."
	msgNoProxy     = "Set PLACES_PROXY_URL to use the Places proxy."
)

// AlertFor maps an error from Select or Submit to what the user is shown.
// It returns the zero Alert for a nil error.
func AlertFor(err error) Alert {
	var upErr *gateway.UpstreamError
	switch {
	case err == nil:
		return Alert{}
	case errors.Is(err, ErrSaveMarker):
		return Alert{Title: "Save failed", Message: requestMessage(err, msgUnreachable)}
	case errors.Is(err, ErrEmptyQuery):
		return Alert{Title: "Missing place", Message: "Enter a place name to search."}
	case errors.Is(err, gateway.ErrNotConfigured):
		return Alert{Title: "Missing proxy", Message: msgNoProxy}
	case errors.Is(err, ErrNoResults), errors.Is(err, gateway.ErrNoLocation):
		return Alert{Title: "No results", Message: msgNoMatches}
	case errors.As(err, &upErr):
		msg := upErr.Message
		if msg == "" {
			msg = msgNoMatches
		}
		return Alert{Title: "No results", Message: msg}
	default:
		return Alert{Title: "Search failed", Message: "Unable to reach Google Places right now."}
	}
}

// LinkAlert maps the result of submitting a shared link. A nil error is the
// confirmation shown on success.
func LinkAlert(err error) Alert {
	switch {
	case err == nil:
		return Alert{Title: "Link submitted", Message: "We received the link and will process it."}
	case errors.Is(err, gateway.ErrEmptyLink):
		return Alert{Title: "Missing link", Message: "Paste a TikTok or Instagram link."}
	case errors.Is(err, gateway.ErrNotConfigured):
		return Alert{Title: "Missing proxy", Message: msgNoProxy}
	default:
		return Alert{Title: "Submit failed", Message: requestMessage(err, msgUnreachable)}
	}
}

// requestMessage returns the proxy's error text when err carries a non-2xx
// answer, otherwise fallback.
func requestMessage(err error, fallback string) string {
	var reqErr *gateway.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
