package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// SchemaVersion is stamped on every snapshot written by Encode.
const SchemaVersion = 1

var errNotObject = errors.New("snapshot is not a JSON object")

type persisted struct {
	Version int `json:"version"`
	AppState
}

// Encode serializes s in the persisted snapshot format.
func Encode(s AppState) ([]byte, error) {
	return json.Marshal(persisted{Version: SchemaVersion, AppState: s})
}

// Decode parses a snapshot and reconciles it over the defaults without
// recomputing derived fields.
func Decode(raw []byte) (AppState, error) {
	return Reconcile(raw, nil, nil)
}

// Reconcile turns a stored snapshot into a canonical AppState.
//
// The snapshot is decoded field by field over Defaults: root fields first,
// then userData fields over DefaultUserData. Nested records (deadline,
// exclusions) are replaced wholesale when present. A field with the wrong
// type keeps its default and is logged. When the resulting age is known and
// the snapshot carries no readable lifeExpectancy, it is computed with
// lookup; a stored value is an override and is kept.
//
// An error is returned only when raw is not a JSON object.
func Reconcile(raw []byte, lookup LifeExpectancyFunc, log logrus.FieldLogger) (AppState, error) {
	if log == nil {
		log = discardLogger()
	}

	fields, err := decodeObject(raw)
	if err != nil {
		return Defaults(), err
	}

	version := 0
	if v, ok := fields["version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			log.WithError(err).Warn("stored snapshot has unreadable version; treating as legacy")
			version = 0
		}
	}
	if version > SchemaVersion {
		log.WithField("version", version).Info("stored snapshot is from a newer release")
	}
	migrate(fields, version, log)

	out := Defaults()
	var mode string
	if decodeValue(fields, "mode", &mode, log) {
		if m, err := ParseMode(mode); err == nil {
			out.Mode = m
		} else {
			log.WithError(err).Warn("discarding stored mode")
		}
	}
	var view string
	if decodeValue(fields, "currentView", &view, log) {
		if v, err := ParseView(view); err == nil {
			out.CurrentView = v
		} else {
			log.WithError(err).Warn("discarding stored view")
		}
	}

	storedExpectancy := false
	if rawUser, ok := fields["userData"]; ok {
		userFields, err := decodeObject(rawUser)
		if err != nil {
			log.WithError(err).Warn("discarding stored userData")
		} else {
			out.UserData, storedExpectancy = reconcileUserData(userFields, log)
		}
	}

	if out.UserData.Age != nil && !storedExpectancy && lookup != nil {
		out.UserData.LifeExpectancy = lookup(*out.UserData.Age, out.UserData.Country)
	}
	return out, nil
}

// reconcileUserData also reports whether lifeExpectancy came from the
// snapshot.
func reconcileUserData(fields map[string]json.RawMessage, log logrus.FieldLogger) (UserData, bool) {
	u := DefaultUserData()
	decodeValue(fields, "name", &u.Name, log)
	decodeNullable(fields, "age", &u.Age, log)
	decodeValue(fields, "country", &u.Country, log)
	hasExpectancy := decodeValue(fields, "lifeExpectancy", &u.LifeExpectancy, log)
	decodeValue(fields, "sleepHours", &u.SleepHours, log)
	decodeValue(fields, "workHours", &u.WorkHours, log)
	decodeValue(fields, "workDays", &u.WorkDays, log)
	decodeValue(fields, "screenTime", &u.ScreenTime, log)
	decodeValue(fields, "commuteTime", &u.CommuteTime, log)
	decodeNullable(fields, "deadline", &u.Deadline, log)
	decodeValue(fields, "savedDeadlines", &u.SavedDeadlines, log)
	decodeValue(fields, "exclusions", &u.Exclusions, log)
	if u.Age != nil && *u.Age < 0 {
		log.WithField("age", *u.Age).Warn("stored age is negative")
	}
	return u, hasExpectancy
}

// decodeValue overwrites dst with fields[key] when present, non-null and of
// the right type.
func decodeValue[T any](fields map[string]json.RawMessage, key string, dst *T, log logrus.FieldLogger) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	if isNull(raw) {
		log.WithField("field", key).Warn("stored field is null; using default")
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.WithError(err).WithField("field", key).Warn("discarding stored field")
		return false
	}
	*dst = v
	return true
}

// decodeNullable is decodeValue for pointer fields, where an explicit null
// replaces the default.
func decodeNullable[T any](fields map[string]json.RawMessage, key string, dst **T, log logrus.FieldLogger) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.WithError(err).WithField("field", key).Warn("discarding stored field")
		return false
	}
	*dst = v
	return true
}

func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if fields == nil {
		return nil, errNotObject
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
