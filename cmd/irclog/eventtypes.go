package main

import (
	"fmt"
	"strings"

	"github.com/ironchicken/Parse-IRCLog/pkg/irclog/event"
)

// parseEventTypes converts --types flag values into event types.
// Returns an error naming the first invalid value and the valid choices.
func parseEventTypes(names []string) ([]event.Type, error) {
	if len(names) == 0 {
		return nil, nil
	}

	types := make([]event.Type, 0, len(names))
	for _, name := range names {
		t, ok := event.ParseType(name)
		if !ok {
			return nil, fmt.Errorf("unknown event type %q (valid: %s)",
				name, strings.Join(event.TypeNames(), ", "))
		}
		types = append(types, t)
	}
	return types, nil
}
