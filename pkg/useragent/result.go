package useragent

import (
	"bytes"
	"encoding/json"
)

// Info is a {name, version} pair. Empty strings mean absent.
type Info struct {
	Name    string
	Version string
}

// IsZero reports whether both fields are absent.
func (i Info) IsZero() bool { return i.Name == "" && i.Version == "" }

// Result accumulates the outcome of one classification.
// Category slots are written in rule order; a later match overwrites an earlier one.
type Result struct {
	Platform Info
	Bot      bool
	Model    string

	slots    map[Category]Info
	order    []Category
	fillNone bool
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{slots: make(map[Category]Info, len(builtinCategories))}
}

// Set writes the slot for cat, overwriting any previous value.
func (r *Result) Set(cat Category, info Info) {
	if r.slots == nil {
		r.slots = make(map[Category]Info, len(builtinCategories))
	}
	if _, ok := r.slots[cat]; !ok {
		r.order = append(r.order, cat)
	}
	r.slots[cat] = info
}

// Get returns the slot for cat.
func (r *Result) Get(cat Category) (Info, bool) {
	info, ok := r.slots[cat]
	return info, ok
}

// Has reports whether cat was written.
func (r *Result) Has(cat Category) bool {
	_, ok := r.slots[cat]
	return ok
}

// Categories returns the written categories in first-write order.
func (r *Result) Categories() []Category {
	out := make([]Category, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Result) OS() Info      { return r.slots[CategoryOS] }
func (r *Result) Dist() Info    { return r.slots[CategoryDist] }
func (r *Result) Flavor() Info  { return r.slots[CategoryFlavor] }
func (r *Result) Browser() Info { return r.slots[CategoryBrowser] }

// Clone returns a deep copy of r.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := &Result{
		Platform: r.Platform,
		Bot:      r.Bot,
		Model:    r.Model,
		slots:    make(map[Category]Info, len(r.slots)),
		order:    make([]Category, len(r.order)),
		fillNone: r.fillNone,
	}
	for k, v := range r.slots {
		c.slots[k] = v
	}
	copy(c.order, r.order)
	return c
}

// fill makes the os and browser slots present so consumers can index them unconditionally.
func (r *Result) fill() {
	r.fillNone = true
	for _, cat := range []Category{CategoryOS, CategoryBrowser} {
		if !r.Has(cat) {
			r.Set(cat, Info{})
		}
	}
}

// restore rolls a slot and the shared fields back to a previous snapshot.
func (r *Result) restore(cat Category, s snapshot) {
	if s.hadSlot {
		r.slots[cat] = s.slot
	} else if _, ok := r.slots[cat]; ok {
		delete(r.slots, cat)
		for i, c := range r.order {
			if c == cat {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.Platform = s.platform
	r.Bot = s.bot
	r.Model = s.model
}

type snapshot struct {
	slot     Info
	hadSlot  bool
	platform Info
	bot      bool
	model    string
}

func (r *Result) snapshot(cat Category) snapshot {
	slot, ok := r.slots[cat]
	return snapshot{slot: slot, hadSlot: ok, platform: r.Platform, bot: r.Bot, model: r.Model}
}

// MarshalJSON renders the result as an object keyed by category name plus
// platform, bot and model. Absent versions are omitted, except on fill-none
// slots where both keys are rendered as null.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"platform":`)
	writeInfo(&buf, r.Platform, true)
	for _, cat := range r.order {
		key, err := json.Marshal(string(cat))
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		explicit := r.fillNone && (cat == CategoryOS || cat == CategoryBrowser)
		writeInfo(&buf, r.slots[cat], explicit)
	}
	if r.Bot {
		buf.WriteString(`,"bot":true`)
	} else {
		buf.WriteString(`,"bot":false`)
	}
	if r.Model != "" {
		buf.WriteString(`,"model":`)
		writeString(&buf, r.Model)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeInfo(buf *bytes.Buffer, info Info, explicitVersion bool) {
	buf.WriteString(`{"name":`)
	writeString(buf, info.Name)
	if info.Version != "" || explicitVersion {
		buf.WriteString(`,"version":`)
		writeString(buf, info.Version)
	}
	buf.WriteByte('}')
}

// writeString writes s as a JSON string, or null when empty.
func writeString(buf *bytes.Buffer, s string) {
	if s == "" {
		buf.WriteString("null")
		return
	}
	b, _ := json.Marshal(s)
	buf.Write(b)
}
