package livingapps

import "testing"

func TestRecordURLRoundTrip(t *testing.T) {
	cases := []struct {
		appID    string
		recordID string
	}{
		{"698efdf6780ae395f0cf30eb", "abc123"},
		{"app", "r"},
		{"698efdf7c1b97696d8ccc11a", "698efdf8380680581fa6c950"},
	}

	for _, tc := range cases {
		url := RecordURL("https://my.living-apps.de/rest", tc.appID, tc.recordID)
		id, ok := ExtractRecordID(url)
		if !ok {
			t.Errorf("ExtractRecordID(%q) not ok", url)
			continue
		}
		if id != tc.recordID {
			t.Errorf("ExtractRecordID(%q) = %q, want %q", url, id, tc.recordID)
		}
	}
}

func TestRecordURLShape(t *testing.T) {
	url := RecordURL("https://my.living-apps.de/rest", "app1", "rec1")
	want := "https://my.living-apps.de/rest/apps/app1/records/rec1"
	if url != want {
		t.Errorf("RecordURL = %q, want %q", url, want)
	}
}

func TestExtractRecordIDRobustness(t *testing.T) {
	cases := []string{
		"",
		"not a url",
		"https://my.living-apps.de/rest/apps/app1",
		"https://my.living-apps.de/rest/apps/app1/records/",
		"https://my.living-apps.de/rest/apps/app1/records/abc/extra",
	}

	for _, input := range cases {
		if id, ok := ExtractRecordID(input); ok {
			t.Errorf("ExtractRecordID(%q) = %q, want not ok", input, id)
		}
	}
}
