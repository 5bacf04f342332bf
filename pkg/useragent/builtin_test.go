package useragent_test

import (
	"testing"

	"github.com/dmitrymomot/uakit/pkg/useragent"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinRules(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		os       useragent.Info
		dist     useragent.Info
		flavor   useragent.Info
		browser  useragent.Info
		platform useragent.Info
		bot      bool
		model    string
	}{
		{
			name:     "Firefox on Ubuntu",
			ua:       "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/117.0",
			os:       useragent.Info{Name: "Linux", Version: "x86_64"},
			dist:     useragent.Info{Name: "Ubuntu"},
			browser:  useragent.Info{Name: "Firefox", Version: "117.0"},
			platform: useragent.Info{Name: "Linux", Version: "x86_64"},
		},
		{
			name:     "Chrome on Android",
			ua:       "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36",
			os:       useragent.Info{Name: "Linux"},
			dist:     useragent.Info{Name: "Android", Version: "13"},
			browser:  useragent.Info{Name: "Chrome", Version: "116.0.0.0"},
			platform: useragent.Info{Name: "Android", Version: "13"},
			model:    "Pixel 7",
		},
		{
			name:     "Chrome on macOS",
			ua:       "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36",
			os:       useragent.Info{Name: "Macintosh"},
			flavor:   useragent.Info{Name: "MacOS", Version: "X 10.15.7"},
			browser:  useragent.Info{Name: "Chrome", Version: "116.0.0.0"},
			platform: useragent.Info{Name: "Mac OS", Version: "X 10.15.7"},
			model:    "Unknown",
		},
		{
			name:     "Internet Explorer 11 via Trident",
			ua:       "Mozilla/5.0 (Windows NT 6.1; WOW64; Trident/7.0; rv:11.0) like Gecko",
			os:       useragent.Info{Name: "Windows", Version: "7 / Server 2008 R2"},
			browser:  useragent.Info{Name: "Microsoft Internet Explorer", Version: "11.0"},
			platform: useragent.Info{Name: "Windows", Version: "7 / Server 2008 R2"},
		},
		{
			name:     "Chromium Edge",
			ua:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36 Edg/115.0.1901.188",
			os:       useragent.Info{Name: "Windows", Version: "10"},
			browser:  useragent.Info{Name: "ChromiumEdge", Version: "115.0.1901.188"},
			platform: useragent.Info{Name: "Windows", Version: "10"},
		},
		{
			name:     "Opera on Chromium",
			ua:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/101.0.4951.64 Safari/537.36 OPR/87.0.4390.45",
			os:       useragent.Info{Name: "Windows", Version: "10"},
			browser:  useragent.Info{Name: "Opera", Version: "87.0.4390.45"},
			platform: useragent.Info{Name: "Windows", Version: "10"},
		},
		{
			name:     "Opera Presto",
			ua:       "Opera/9.80 (Windows NT 6.1; U; en) Presto/2.10.289 Version/12.00",
			os:       useragent.Info{Name: "Windows", Version: "7 / Server 2008 R2"},
			browser:  useragent.Info{Name: "Opera", Version: "12.00"},
			platform: useragent.Info{Name: "Windows", Version: "7 / Server 2008 R2"},
		},
		{
			name:     "Safari on iPad",
			ua:       "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
			os:       useragent.Info{Name: "iOS"},
			dist:     useragent.Info{Name: "IPad", Version: "16.6"},
			browser:  useragent.Info{Name: "Safari", Version: "16.6"},
			platform: useragent.Info{Name: "iOS", Version: "16.6"},
			model:    "Unknown",
		},
		{
			name:     "Chrome on ChromeOS",
			ua:       "Mozilla/5.0 (X11; CrOS x86_64 14541.0.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
			os:       useragent.Info{Name: "ChromeOS", Version: "14541.0.0"},
			browser:  useragent.Info{Name: "Chrome", Version: "115.0.0.0"},
			platform: useragent.Info{Name: "ChromeOS", Version: "14541.0.0"},
		},
		{
			name:     "IE Mobile on Windows Phone",
			ua:       "Mozilla/5.0 (compatible; MSIE 10.0; Windows Phone 8.0; Trident/6.0; IEMobile/10.0; ARM; Touch; NOKIA; Lumia 920)",
			os:       useragent.Info{Name: "Windows Phone", Version: "8.0"},
			browser:  useragent.Info{Name: "Microsoft Internet Explorer", Version: "10.0"},
			platform: useragent.Info{Name: "Windows", Version: "8.0"},
		},
		{
			name:     "PlayStation keeps spaces in version",
			ua:       "Mozilla/5.0 (PlayStation 4 5.55) AppleWebKit/601.2 (KHTML, like Gecko)",
			os:       useragent.Info{Name: "PlayStation", Version: "4 5.55"},
			platform: useragent.Info{Name: "PlayStation", Version: "4 5.55"},
		},
		{
			name:     "Samsung Tizen TV",
			ua:       "Mozilla/5.0 (SMART-TV; LINUX; Tizen 6.0) AppleWebKit/537.36 (KHTML, like Gecko) 76.0.3809.146/6.0 TV Safari/537.36",
			dist:     useragent.Info{Name: "Tizen", Version: "6.0"},
			browser:  useragent.Info{Name: "Safari", Version: "537.36"},
			platform: useragent.Info{Name: "Linux", Version: "6.0"},
			model:    "Smart TV",
		},
		{
			name:     "Roku DVP",
			ua:       "Roku/DVP-9.10 (519.10E04111A)",
			dist:     useragent.Info{Name: "Roku", Version: "519.10E04111A"},
			platform: useragent.Info{Name: "Linux", Version: "519.10E04111A"},
		},
		{
			name:    "Netflix device type",
			ua:      "Netflix/6.0.1 (DEVTYPE=RKU-42XXX-; CERTVER=0)",
			browser: useragent.Info{Name: "NetFlix", Version: "6.0.1"},
			model:   "Roku 3 Media Streamer 4200X",
		},
		{
			name:    "Netflix unknown device keeps code",
			ua:      "Netflix/6.0.1 (DEVTYPE=ZZTOP; CERTVER=0)",
			browser: useragent.Info{Name: "NetFlix", Version: "6.0.1"},
			model:   "Unknown: ZZTOP",
		},
		{
			name:     "CFNetwork with Darwin kernel",
			ua:       "MyApp/1 CFNetwork/1490.0.4 Darwin/24.0.0",
			os:       useragent.Info{Name: "Darwin", Version: "Mac OS X 15.0 / iOS 18.0"},
			platform: useragent.Info{Name: "Darwin", Version: "Mac OS X 15.0 / iOS 18.0"},
		},
		{
			name:     "unknown Darwin kernel",
			ua:       "MyApp/1 CFNetwork/1 Darwin/99.1.0",
			os:       useragent.Info{Name: "Darwin", Version: "Mac OS X / iOS - 99.1.0"},
			platform: useragent.Info{Name: "Darwin", Version: "Mac OS X / iOS - 99.1.0"},
		},
		{
			name:    "YandexBot",
			ua:      "Mozilla/5.0 (compatible; YandexBot/3.0; +http://yandex.com/bots)",
			browser: useragent.Info{Name: "YandexBot", Version: "3.0"},
			bot:     true,
		},
		{
			name:    "bingbot",
			ua:      "Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)",
			browser: useragent.Info{Name: "BingBot", Version: "2.0"},
			bot:     true,
		},
		{
			name:    "Googlebot compatible form",
			ua:      "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			browser: useragent.Info{Name: "Googlebot", Version: "2.1"},
			bot:     true,
		},
		{
			name:    "python-requests",
			ua:      "python-requests/2.31.0",
			browser: useragent.Info{Name: "Python", Version: "2.31.0"},
		},
		{
			name:     "axios",
			ua:       "axios/1.6.2",
			os:       useragent.Info{Name: "Axios", Version: "1.6.2"},
			platform: useragent.Info{Name: "axios", Version: "1.6.2"},
		},
		{
			name: "binary garbage",
			ua:   "\x00\xff\xfe;;//  ))",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := useragent.Classify(tc.ua)

			assert.Equal(t, tc.os, res.OS(), "os")
			assert.Equal(t, tc.dist, res.Dist(), "dist")
			assert.Equal(t, tc.flavor, res.Flavor(), "flavor")
			assert.Equal(t, tc.browser, res.Browser(), "browser")
			assert.Equal(t, tc.platform, res.Platform, "platform")
			assert.Equal(t, tc.bot, res.Bot, "bot")
			assert.Equal(t, tc.model, res.Model, "model")
		})
	}
}

func TestBuiltinRulesAreFresh(t *testing.T) {
	a := useragent.BuiltinRules()
	b := useragent.BuiltinRules()
	assert.Equal(t, len(a), len(b))
	assert.NotSame(t, a[0], b[0])
}
