package uastats

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/uakit/pkg/useragent"
)

// Dimension names one counted attribute of a classification.
type Dimension string

const (
	DimensionOS    Dimension = "os"
	DimensionAgent Dimension = "agent"
	DimensionModel Dimension = "model"
	DimensionBot   Dimension = "bot"
)

// Dimensions lists every dimension in storage order.
var Dimensions = []Dimension{DimensionOS, DimensionAgent, DimensionModel, DimensionBot}

// ParseDimension validates s.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionOS, DimensionAgent, DimensionModel, DimensionBot:
		return d, nil
	}
	return "", ErrUnknownDimension
}

func (d Dimension) String() string { return string(d) }

// DayLayout is the bucket key format. Days are UTC.
const DayLayout = time.DateOnly

// Day returns the UTC bucket key for t.
func Day(t time.Time) string { return t.UTC().Format(DayLayout) }

// Event is one classified request, reduced to the counted values.
type Event struct {
	At    time.Time
	OS    string
	Agent string
	Model string
	Bot   bool
}

// EventFromSummary builds an Event from s. OS and agent are counted by name,
// without versions.
func EventFromSummary(s useragent.Summary, at time.Time) Event {
	return Event{
		At:    at,
		OS:    s.OSName,
		Agent: s.AgentName,
		Model: s.Model,
		Bot:   s.Bot,
	}
}

type value struct {
	dim Dimension
	val string
}

// values returns the non-empty dimension values of e in storage order.
func (e Event) values() []value {
	out := make([]value, 0, len(Dimensions))
	if e.OS != "" {
		out = append(out, value{DimensionOS, e.OS})
	}
	if e.Agent != "" {
		out = append(out, value{DimensionAgent, e.Agent})
	}
	if e.Model != "" {
		out = append(out, value{DimensionModel, e.Model})
	}
	return append(out, value{DimensionBot, strconv.FormatBool(e.Bot)})
}

func (e Event) day() string {
	if e.At.IsZero() {
		return Day(time.Now())
	}
	return Day(e.At)
}
