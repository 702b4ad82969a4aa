package livingapps

import "strings"

// Records link across collections by storing a fully qualified record URL
// of the form {base}/apps/{appID}/records/{recordID}. The shape is part of
// the stored data, so both directions must be preserved exactly.

// RecordURL encodes a reference to a record in the given app.
func RecordURL(baseURL, appID, recordID string) string {
	return baseURL + "/apps/" + appID + "/records/" + recordID
}

// ExtractRecordID decodes a reference URL to its record identifier by
// taking the trailing path segment after "/records/". Resolution is
// best-effort: an empty or malformed input yields ok == false, never an
// error.
func ExtractRecordID(url string) (string, bool) {
	if url == "" {
		return "", false
	}

	idx := strings.LastIndex(url, "/records/")
	if idx < 0 {
		return "", false
	}

	id := url[idx+len("/records/"):]
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
