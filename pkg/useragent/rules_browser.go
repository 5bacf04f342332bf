package useragent

import (
	"strings"

	"github.com/dmitrymomot/uakit/pkg/reftable"
)

var (
	toEnd     = []Marker{{"/", ""}}
	toSemi    = []Marker{{"/", ";"}}
	spaceSemi = []Marker{{" ", ";"}}
)

func browser(name string, tokens ...string) *Detector {
	return &Detector{RuleName: name, RuleCategory: CategoryBrowser, LookFor: tokens}
}

func bot(name string, tokens ...string) *Detector {
	d := browser(name, tokens...)
	d.Bot = true
	return d
}

func (d *Detector) withMarkers(m []Marker) *Detector {
	d.Markers = m
	return d
}

func (d *Detector) skipping(tokens ...string) *Detector {
	d.Skip = tokens
	return d
}

func (d *Detector) withVersion(fn func(ua, token string) (string, bool)) *Detector {
	d.VersionFunc = fn
	return d
}

// browserRules returns the built-in agent rules in evaluation order.
// Later rules overwrite earlier matches, so generic rules come first.
func browserRules() []Rule {
	return []Rule{
		browser("Konqueror", "Konqueror").withMarkers(toSemi),
		browser("Opera Mobile", "Opera Mobi").withVersion(operaVersion(false)),
		browser("Opera", "Opera").skipping("Opera Mobi").withVersion(operaVersion(true)),
		browser("Opera", "OPR").skipping("Build/OPR").withMarkers(toEnd),
		browser("OperaGX", "OPX").withMarkers(toEnd),
		browser("Netscape", "Netscape").withMarkers(toEnd),
		browser("Microsoft Internet Explorer", "Trident").skipping("MSIE", "Opera").withVersion(tridentVersion),
		browser("Microsoft Internet Explorer", "MSIE").skipping("Opera").withMarkers(spaceSemi),
		browser("MSEdge", "Edge").skipping("MSIE").withMarkers(toEnd),
		browser("ChromiumEdge", "Edg/").withVersion(func(ua, _ string) (string, bool) {
			return nonEmpty(strings.TrimSpace(afterLast(ua, "Edg/")))
		}),
		browser("Galeon", "Galeon"),
		browser("WOSBrowser", "wOSBrowser").withVersion(noVersion),
		&Detector{
			RuleName:     "Safari",
			RuleCategory: CategoryBrowser,
			Skip:         []string{"Edge", "YaBrowser", "FxiOS"},
			MatchFunc:    safariMatch,
			VersionFunc:  safariVersion,
		},
		bot("Googlebot",
			"Googlebot", "Googlebot-News", "Googlebot-Image", "Googlebot-Video", "Googlebot-Mobile",
			"Mediapartners-Google", "Mediapartners", "AdsBot-Google", "web/snippet",
		).withMarkers([]Marker{{"/", ";"}, {"/", " "}}),
		bot("GoogleFeedFetcher", "Feedfetcher-Google"),
		bot("RunscopeRadar", "runscope-radar"),
		bot("GoogleAppEngine", "AppEngine-Google"),
		bot("GoogleApps", "GoogleApps script"),
		bot("TwitterBot", "Twitterbot"),
		bot("TelegramBot", "TelegramBot"),
		bot("MJ12Bot", "MJ12bot"),
		bot("YandexBot", "Yandex").withVersion(yandexBotVersion),
		bot("AmazonBot", "Amazonbot").withMarkers(toSemi),
		bot("BingBot", "bingbot").withMarkers(toSemi),
		bot("BaiduBot",
			"Baiduspider", "Baiduspider-image", "Baiduspider-video", "Baiduspider-news",
			"Baiduspider-favo", "Baiduspider-cpro", "Baiduspider-ads",
		).withMarkers(toSemi),
		bot("LinkedInBot", "LinkedInBot"),
		bot("ArchiveDotOrgBot", "archive.org_bot"),
		bot("YoudaoBot", "YoudaoBot"),
		bot("YoudaoBotImage", "YodaoBot-Image"),
		bot("RogerBot", "rogerbot"),
		bot("TweetmemeBot", "TweetmemeBot"),
		bot("WebshotBot", "WebshotBot"),
		bot("SensikaBot", "SensikaBot"),
		bot("YesupBot", "YesupBot"),
		bot("DotBot", "DotBot"),
		bot("PhantomJS", "Browser/Phantom"),
		bot("FacebookExternalHit", "facebookexternalhit"),
		bot("SevenSiters", "7Siters").withMarkers(toSemi),
		browser("NokiaOvi", "S40OviBrowser"),
		browser("UCBrowser", "UCBrowser"),
		browser("BrowserNG", "BrowserNG"),
		browser("Dolfin", "Dolfin"),
		browser("NetFront", "NetFront"),
		browser("Jasmine", "Jasmine"),
		browser("Openwave", "Openwave"),
		browser("UPBrowser", "UP.Browser"),
		browser("OneBrowser", "OneBrowser"),
		browser("ObigoInternetBrowser", "ObigoInternetBrowser"),
		browser("TelecaBrowser", "TelecaBrowser"),
		browser("MAUI", "Browser/MAUI").withVersion(func(ua, _ string) (string, bool) {
			return nonEmpty(truncateRunes(afterLast(ua, "Release/"), 10))
		}),
		browser("NintendoBrowser", "NintendoBrowser"),
		browser("AndroidBrowser", "Android").skipping("Chrome", "Windows Phone", "Opera", "Firefox").withVersion(noVersion),
		browser("Firefox", "Firefox", "FxiOS").skipping("SeaMonkey", "web/snippet").withMarkers(toEnd),
		browser("Firebird", "Firebird").withMarkers(toEnd),
		browser("Thunderbird", "Thunderbird").withMarkers(toEnd),
		browser("SeaMonkey", "SeaMonkey").withMarkers(toEnd),
		browser("iCanvas", "iCanvas").withMarkers(toEnd),
		browser("GuardianBrowser", "GuardianBrowser").withMarkers(toEnd),
		browser("DuckDuckGo", "Ddg").withMarkers(toEnd),
		browser("Python", "python", "python-requests").withVersion(lastSlashVersion),
		browser("Java", "Java", "Java-http-client").withVersion(lastSlashVersion),
		browser("curl", "curl").withVersion(lastSlashVersion),
		&Detector{
			RuleName:     "NetFlix",
			RuleCategory: CategoryBrowser,
			LookFor:      []string{"Netflix/"},
			VersionFunc: func(ua, _ string) (string, bool) {
				return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "Netflix/"), " ")))
			},
			ModelFunc: netflixModel,
		},
		browser("Chrome", "Chrome").
			skipping(" OPR", "Edge", "YaBrowser", "Edg/", "YandexBot", "bingbot", "amazonbot", "OPX", "GuardianBrowser").
			withVersion(chromiumVersion),
		browser("Yandex.Browser", "YaBrowser").withVersion(chromiumVersion),
		browser("ChromeiOS", "CriOS"),
	}
}

// operaVersion reads "Version/x" when present, otherwise the text after "Opera".
func operaVersion(cutParen bool) func(string, string) (string, bool) {
	return func(ua, _ string) (string, bool) {
		if part, ok := field(ua, "Version", 1); ok {
			return nonEmpty(beforeFirst(dropFirst(part), " "))
		}
		part, ok := field(ua, "Opera", 1)
		if !ok {
			return "", false
		}
		v := beforeFirst(dropFirst(part), " ")
		if cutParen {
			v = beforeFirst(v, "(")
		}
		return nonEmpty(v)
	}
}

var tridentToIE = map[string]string{
	"4.0": "8.0",
	"5.0": "9.0",
	"6.0": "10.0",
	"7.0": "11.0",
}

func tridentVersion(ua, token string) (string, bool) {
	v, ok := ExtractWithMarkers(ua, token, toSemi, false)
	if !ok {
		return "", false
	}
	ie, ok := tridentToIE[v]
	return ie, ok
}

var safariUnless = []string{"Chrome", "OmniWeb", "wOSBrowser", "Android", "CriOS", "OPX", "Ddg"}

func safariMatch(ua string) (string, bool) {
	if !strings.Contains(ua, "Safari") {
		return "", false
	}
	for _, w := range safariUnless {
		if strings.Contains(ua, w) {
			return "", false
		}
	}
	return "Safari", true
}

func safariVersion(ua, _ string) (string, bool) {
	var part string
	switch {
	case strings.Contains(ua, "Version/"):
		part = afterLast(ua, "Version/")
	case strings.Contains(ua, "Safari/"):
		part = afterLast(ua, "Safari/")
	default:
		part = afterLast(ua, "Safari ")
	}
	return nonEmpty(strings.TrimSpace(beforeFirst(part, " ")))
}

func yandexBotVersion(ua, token string) (string, bool) {
	i := strings.Index(ua, token)
	if i < 0 {
		return "", false
	}
	part, ok := field(ua[i:], "/", 1)
	if !ok {
		return "", false
	}
	part = beforeFirst(strings.ReplaceAll(part, ")", ";"), ";")
	return nonEmpty(strings.TrimSpace(part))
}

func lastSlashVersion(ua, _ string) (string, bool) {
	return nonEmpty(afterLast(ua, "/"))
}

// chromiumVersion reads "<token>/x" up to the first space, dropping any "+build" suffix.
func chromiumVersion(ua, token string) (string, bool) {
	v := beforeFirst(afterLast(ua, token+"/"), " ")
	v = beforeFirst(v, "+")
	return nonEmpty(strings.TrimSpace(v))
}

// netflixModel resolves the DEVTYPE code against the Netflix device table,
// keeping the raw code when nothing matches.
func netflixModel(ua, _ string) (string, bool) {
	if !strings.Contains(ua, "DEVTYPE=") {
		return reftable.Unknown, true
	}
	code := beforeFirst(afterLast(ua, "DEVTYPE="), ";")
	if code == "" {
		return reftable.Unknown, true
	}
	if label, ok := reftable.Netflix().Find(code); ok {
		return label, true
	}
	return reftable.Netflix().GetOrCode(code), true
}
