package probe

import (
	"errors"
	"syscall"

	"deckprobe/internal/model"
)

// classify maps a transport fault onto the probe's reason taxonomy.
func classify(err error) (model.Reason, string) {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return model.ReasonConnectionRefused, "could not connect to server"
	}
	return model.ReasonTransport, err.Error()
}

func failure(err error) model.Outcome {
	reason, message := classify(err)
	return model.Outcome{Reason: reason, Message: message}
}
