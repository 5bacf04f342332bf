package useragent

import "strings"

// Summary is the flattened OS/agent view of a Result.
type Summary struct {
	OSName       string `json:"os_name"`
	OSVersion    string `json:"os_version"`
	AgentName    string `json:"agent_name"`
	AgentVersion string `json:"agent_version"`
	Model        string `json:"model,omitempty"`
	Bot          bool   `json:"bot"`
}

// Summarize flattens res. The OS name joins the flavor, dist and os names in
// that order; the OS version is the first non-empty of the same three.
func Summarize(res *Result) Summary {
	if res == nil {
		res = NewResult()
	}

	var names []string
	var version string
	for _, cat := range []Category{CategoryFlavor, CategoryDist, CategoryOS} {
		info, ok := res.Get(cat)
		if !ok {
			continue
		}
		if info.Name != "" {
			names = append(names, info.Name)
		}
		if version == "" {
			version = info.Version
		}
	}

	s := Summary{
		OSName:    UnknownOS,
		OSVersion: version,
		AgentName: UnknownBrowser,
		Model:     res.Model,
		Bot:       res.Bot,
	}
	if len(names) > 0 {
		s.OSName = strings.Join(names, " ")
	} else {
		s.OSVersion = ""
	}
	if b, ok := res.Get(CategoryBrowser); ok && b.Name != "" {
		s.AgentName = b.Name
		s.AgentVersion = b.Version
	}
	return s
}

// Tuple returns (osName, osVersion, agentName, agentVersion).
func (s Summary) Tuple() (string, string, string, string) {
	return s.OSName, s.OSVersion, s.AgentName, s.AgentVersion
}

// OSLabel joins the OS name and version with a space, omitting an empty version.
func (s Summary) OSLabel() string { return label(s.OSName, s.OSVersion) }

// AgentLabel joins the agent name and version with a space, omitting an empty version.
func (s Summary) AgentLabel() string { return label(s.AgentName, s.AgentVersion) }

// Labels returns (OSLabel, AgentLabel).
func (s Summary) Labels() (string, string) { return s.OSLabel(), s.AgentLabel() }

func label(name, version string) string {
	if version == "" {
		return name
	}
	return name + " " + version
}

// Summary flattens r. See Summarize.
func (r *Result) Summary() Summary { return Summarize(r) }
