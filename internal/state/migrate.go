package state

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

type migration func(fields map[string]json.RawMessage) error

// migrations[v] upgrades a version v snapshot to v+1, in place.
var migrations = map[int]migration{
	0: nullEmptyDeadlineParts,
}

func migrate(fields map[string]json.RawMessage, from int, log logrus.FieldLogger) {
	for v := from; v < SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			continue
		}
		if err := step(fields); err != nil {
			log.WithError(err).WithField("from", v).Warn("snapshot migration failed; continuing with stored fields")
		}
	}
}

// nullEmptyDeadlineParts rewrites deadline date/time stored as "" by
// unversioned releases to null, which is what an unset part means.
func nullEmptyDeadlineParts(fields map[string]json.RawMessage) error {
	rawUser, ok := fields["userData"]
	if !ok {
		return nil
	}
	var user map[string]json.RawMessage
	if err := json.Unmarshal(rawUser, &user); err != nil || user == nil {
		return nil
	}
	rawDeadline, ok := user["deadline"]
	if !ok {
		return nil
	}
	var deadline map[string]json.RawMessage
	if err := json.Unmarshal(rawDeadline, &deadline); err != nil || deadline == nil {
		return nil
	}

	changed := false
	for _, key := range []string{"date", "time"} {
		if string(deadline[key]) == `""` {
			deadline[key] = json.RawMessage("null")
			changed = true
		}
	}
	if !changed {
		return nil
	}

	encoded, err := json.Marshal(deadline)
	if err != nil {
		return err
	}
	user["deadline"] = encoded
	encodedUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	fields["userData"] = encodedUser
	return nil
}
