package models

// Ad is one entry of the third-party advertising feed. Ads are never
// persisted; the server keeps a short-lived in-memory copy and the client
// merges them into the feed.
type Ad struct {
	Commerce  string        `json:"commerce"`
	Date      AdDateWindow  `json:"date"`
	ImagePath []AdImagePath `json:"imagePath"`
	URL       string        `json:"Url"`
}

// AdDateWindow is the active window of an ad, in Unix milliseconds.
type AdDateWindow struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// AdImagePath holds the image variants of an ad.
// The upstream feed spells "portraite" this way.
type AdImagePath struct {
	Portrait  string `json:"portraite"`
	Landscape string `json:"landscape"`
}

// ActiveAt reports whether the ad's date window covers the given Unix
// millisecond timestamp.
func (a Ad) ActiveAt(unixMillis int64) bool {
	return a.Date.Start <= unixMillis && unixMillis <= a.Date.End
}
