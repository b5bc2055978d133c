package health

import (
	"context"
	"errors"
	"fmt"
)

// Dictionary returns a [Checker] named "dictionary" that passes once the
// spelling dictionary holds at least one word. The words function is called
// on every /readyz request so hot-reloaded dictionaries are reflected.
func Dictionary(words func() int) Checker {
	return Checker{
		Name: "dictionary",
		Check: func(_ context.Context) error {
			if n := words(); n == 0 {
				return errors.New("dictionary is empty")
			}
			return nil
		},
	}
}

// Provider returns a [Checker] named after the provider kind ("analyze",
// "tts", "music") that fails while no implementation is configured for it.
func Provider(kind string, configured func() bool) Checker {
	return Checker{
		Name: kind,
		Check: func(_ context.Context) error {
			if !configured() {
				return fmt.Errorf("no %s provider configured", kind)
			}
			return nil
		},
	}
}
