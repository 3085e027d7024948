package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/edustream/internal/client/client"
	"github.com/dmitrijs2005/edustream/internal/common"
)

// failureMessage turns an API error into the text shown to the user.
// Messages sent by the server are passed through as they are.
func failureMessage(err error) string {
	var verr *common.ValidationError
	if errors.As(err, &verr) && !verr.Empty() {
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, strings.Join(verr.Fields[k], " "))
		}
		return strings.Join(lines, "\n")
	}

	if errors.Is(err, client.ErrUnavailable) {
		return "server is unavailable, try again later"
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return err.Error()
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
