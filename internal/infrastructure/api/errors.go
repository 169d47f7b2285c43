package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pawshop/storefront/internal/core/domain"
)

const (
	msgNetwork            = "could not reach the server, check your connection and try again"
	msgInvalidCredentials = "wrong whatsapp number or password"
	msgUnauthenticated    = "your session has expired, please login again"
	msgForbidden          = "you do not have permission to do that"
	msgNotFound           = "the requested item was not found"
	msgDuplicateAccount   = "an account with this whatsapp number already exists"
	msgServer             = "something went wrong on the server, please try again later"
)

func networkError(err error) *domain.Error {
	return &domain.Error{Kind: domain.KindNetwork, Message: msgNetwork, Err: err}
}

// classify maps an error response onto the domain taxonomy. The body is
// expected in the Laravel shape {"message": "...", "errors": {"field": ["..."]}}
// but anything else still yields a usable error.
func classify(endpoint string, status int, body []byte) *domain.Error {
	e := &domain.Error{Status: status}
	message := strings.TrimSpace(gjson.GetBytes(body, "message").String())
	fields := fieldErrors(body)

	switch {
	case status == http.StatusUnauthorized && endpoint == endpointLogin:
		e.Kind, e.Message = domain.KindInvalidCredentials, msgInvalidCredentials
	case status == http.StatusUnauthorized:
		e.Kind, e.Message = domain.KindUnauthenticated, msgUnauthenticated
	case status == http.StatusForbidden:
		e.Kind, e.Message = domain.KindForbidden, msgForbidden
	case status == http.StatusNotFound:
		e.Kind, e.Message = domain.KindNotFound, msgNotFound
	case status == http.StatusConflict:
		e.Kind, e.Message = domain.KindDuplicateAccount, msgDuplicateAccount
	case status == http.StatusUnprocessableEntity && endpoint == endpointRegister && takenNumber(fields):
		// The backend reports a registered number as a unique-rule failure.
		e.Kind, e.Message = domain.KindDuplicateAccount, msgDuplicateAccount
	case status == http.StatusUnprocessableEntity:
		e.Kind = domain.KindValidation
		e.Message = joinFields(fields)
	default:
		e.Kind, e.Message = domain.KindServer, msgServer
	}

	if len(fields) > 0 {
		e.Fields = fields
	}
	if message != "" && e.Kind != domain.KindInvalidCredentials {
		e.Message = message
	}
	if e.Message == "" {
		e.Message = domain.ErrValidation.Error()
	}
	return e
}

// fieldErrors reads the first message per field from the "errors" object.
func fieldErrors(body []byte) map[string]string {
	errs := gjson.GetBytes(body, "errors")
	if !errs.IsObject() {
		return nil
	}
	fields := make(map[string]string)
	errs.ForEach(func(key, value gjson.Result) bool {
		msg := value.String()
		if value.IsArray() {
			msg = value.Get("0").String()
		}
		if msg != "" {
			fields[key.String()] = msg
		}
		return true
	})
	return fields
}

func takenNumber(fields map[string]string) bool {
	return strings.Contains(strings.ToLower(fields["whatsapp_number"]), "taken")
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return strings.Join(msgs, "; ")
}
