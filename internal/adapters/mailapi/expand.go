package mailapi

import (
	"sort"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"

	tw "daybrief/internal/core/timewindow"
	"daybrief/internal/platform/logger"
)

// maxOccurrencesPerSeries caps expansion so a runaway rule cannot blow up a
// response; one instance per day over the widest span is well inside it
const maxOccurrencesPerSeries = 366

// Occurrence is one concrete event instance inside a window
type Occurrence struct {
	ID    string
	Event Event
	Start time.Time
	End   time.Time
}

// ExpandOccurrences resolves raw API events into concrete instances inside w,
// sorted by start. Concrete occurrences returned by the API win over local
// expansion: a series master is expanded only when none of its occurrences
// came back, so instances are never double counted. Cancelled and
// undecodable events are skipped with a warn
func ExpandOccurrences(log *logger.Logger, raw []Event, w tw.Window) []Occurrence {
	covered := make(map[string]bool)
	for _, ev := range raw {
		if ev.Type == EventOccurrence && ev.SeriesMasterID != "" {
			covered[ev.SeriesMasterID] = true
		}
	}

	out := make([]Occurrence, 0, len(raw))
	for _, ev := range raw {
		if ev.IsCancelled {
			continue
		}
		if ev.Type == EventSeriesMaster {
			if covered[ev.ID] || ev.RecurrenceRule == "" {
				continue
			}
			out = append(out, expandSeries(log, ev, w)...)
			continue
		}

		start, end, err := eventBounds(ev)
		if err != nil {
			log.Warn().Err(err).Str("event", ev.ID).Msg("mailapi skip undecodable event")
			continue
		}
		if !overlaps(start, end, w) {
			continue
		}
		out = append(out, Occurrence{ID: ev.ID, Event: ev, Start: start, End: end})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// expandSeries materializes a master's rule inside w, preserving the
// master's duration for every instance
func expandSeries(log *logger.Logger, ev Event, w tw.Window) []Occurrence {
	start, end, err := eventBounds(ev)
	if err != nil {
		log.Warn().Err(err).Str("event", ev.ID).Msg("mailapi skip undecodable series master")
		return nil
	}
	r, err := rrule.StrToRRule(ev.RecurrenceRule)
	if err != nil {
		log.Warn().Err(err).Str("event", ev.ID).Str("rrule", ev.RecurrenceRule).
			Msg("mailapi skip unparsable recurrence rule")
		return nil
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)

	// Between wants the bounds in the rule's own location
	loc := start.Location()
	times := set.Between(w.Start.In(loc), w.End.In(loc), true)
	if len(times) > maxOccurrencesPerSeries {
		times = times[:maxOccurrencesPerSeries]
	}

	dur := end.Sub(start)
	out := make([]Occurrence, 0, len(times))
	for _, t := range times {
		out = append(out, Occurrence{
			ID:    ev.ID + "_" + strconv.FormatInt(t.Unix(), 10),
			Event: ev,
			Start: t,
			End:   t.Add(dur),
		})
	}
	return out
}

func eventBounds(ev Event) (time.Time, time.Time, error) {
	start, err := ev.Start.Time()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ev.End.Time()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func overlaps(start, end time.Time, w tw.Window) bool {
	return !end.Before(w.Start) && !start.After(w.End)
}
