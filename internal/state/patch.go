package state

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// UserDataPatch is a partial UserData update. Nil fields are left untouched.
// Age and Deadline can also be cleared; a clear wins over a value in the same
// patch.
type UserDataPatch struct {
	Name           *string
	Age            *int
	ClearAge       bool
	Country        *string
	LifeExpectancy *float64
	SleepHours     *float64
	WorkHours      *float64
	WorkDays       *float64
	ScreenTime     *float64
	CommuteTime    *float64
	Deadline       *Deadline
	ClearDeadline  bool
	SavedDeadlines *[]SavedDeadline
	Exclusions     *Exclusions
}

// TouchesAgeOrCountry reports whether applying p may change lifeExpectancy.
func (p UserDataPatch) TouchesAgeOrCountry() bool {
	return p.Age != nil || p.ClearAge || p.Country != nil
}

// Apply merges p shallowly into u and returns the result; u is not modified.
//
// When p touches age or country and does not set LifeExpectancy itself,
// lifeExpectancy is recomputed from the resulting age and country. A null
// resulting age leaves lifeExpectancy as it was.
func (p UserDataPatch) Apply(u UserData, lookup LifeExpectancyFunc) UserData {
	out := u.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	switch {
	case p.ClearAge:
		out.Age = nil
	case p.Age != nil:
		out.Age = clonePtr(p.Age)
	}
	if p.Country != nil {
		out.Country = *p.Country
	}
	setFloat(&out.SleepHours, p.SleepHours)
	setFloat(&out.WorkHours, p.WorkHours)
	setFloat(&out.WorkDays, p.WorkDays)
	setFloat(&out.ScreenTime, p.ScreenTime)
	setFloat(&out.CommuteTime, p.CommuteTime)
	switch {
	case p.ClearDeadline:
		out.Deadline = nil
	case p.Deadline != nil:
		d := p.Deadline.Clone()
		out.Deadline = &d
	}
	if p.SavedDeadlines != nil {
		out.SavedDeadlines = append([]SavedDeadline{}, (*p.SavedDeadlines)...)
	}
	if p.Exclusions != nil {
		out.Exclusions = *p.Exclusions
	}

	switch {
	case p.LifeExpectancy != nil:
		out.LifeExpectancy = *p.LifeExpectancy
	case p.TouchesAgeOrCountry() && out.Age != nil && lookup != nil:
		out.LifeExpectancy = lookup(*out.Age, out.Country)
	}
	return out
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// UnmarshalJSON decodes a partial userData object using the snapshot field
// names. A null age or deadline clears it; unknown fields are rejected.
func (p *UserDataPatch) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out UserDataPatch

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := fields[key]
		null := isNull(raw)
		var decodeErr error
		switch key {
		case "age":
			if null {
				out.ClearAge = true
				continue
			}
			decodeErr = json.Unmarshal(raw, &out.Age)
		case "deadline":
			if null {
				out.ClearDeadline = true
				continue
			}
			decodeErr = json.Unmarshal(raw, &out.Deadline)
		default:
			dst, known := patchTarget(&out, key)
			if !known {
				return fmt.Errorf("unknown userData field %q (known: %s)", key, strings.Join(patchFields, ", "))
			}
			if null {
				return fmt.Errorf("userData field %q cannot be null", key)
			}
			decodeErr = json.Unmarshal(raw, dst)
		}
		if decodeErr != nil {
			return fmt.Errorf("userData field %q: %w", key, decodeErr)
		}
	}
	*p = out
	return nil
}

var patchFields = []string{
	"name", "age", "country", "lifeExpectancy", "sleepHours", "workHours",
	"workDays", "screenTime", "commuteTime", "deadline", "savedDeadlines", "exclusions",
}

func patchTarget(p *UserDataPatch, key string) (any, bool) {
	switch key {
	case "name":
		return &p.Name, true
	case "country":
		return &p.Country, true
	case "lifeExpectancy":
		return &p.LifeExpectancy, true
	case "sleepHours":
		return &p.SleepHours, true
	case "workHours":
		return &p.WorkHours, true
	case "workDays":
		return &p.WorkDays, true
	case "screenTime":
		return &p.ScreenTime, true
	case "commuteTime":
		return &p.CommuteTime, true
	case "savedDeadlines":
		return &p.SavedDeadlines, true
	case "exclusions":
		return &p.Exclusions, true
	default:
		return nil, false
	}
}
