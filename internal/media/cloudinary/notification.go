package cloudinary

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingSignature = errors.New("missing notification signature")
	ErrInvalidSignature = errors.New("invalid notification signature")
	ErrStaleSignature   = errors.New("notification timestamp outside allowed window")
)

// Notification is the subset of a media host change notification we route on
type Notification struct {
	NotificationType string `json:"notification_type"`
	PublicID         string `json:"public_id"`
	AssetFolder      string `json:"asset_folder"`
	Folder           string `json:"folder"`
	Resources        []struct {
		PublicID    string `json:"public_id"`
		AssetFolder string `json:"asset_folder"`
		Folder      string `json:"folder"`
	} `json:"resources"`
}

// Paths returns every asset path mentioned by the notification
func (n Notification) Paths() []string {
	var paths []string
	add := func(values ...string) {
		for _, v := range values {
			if v = strings.Trim(strings.TrimSpace(v), "/"); v != "" {
				paths = append(paths, v)
			}
		}
	}
	add(n.PublicID, n.AssetFolder, n.Folder)
	for _, r := range n.Resources {
		add(r.PublicID, r.AssetFolder, r.Folder)
	}
	return paths
}

// WithinFolder reports whether any path of the notification lies under base
func (n Notification) WithinFolder(base string) bool {
	base = strings.Trim(base, "/")
	if base == "" {
		return len(n.Paths()) > 0
	}
	for _, p := range n.Paths() {
		if p == base || strings.HasPrefix(p, base+"/") {
			return true
		}
	}
	return false
}

// Sign computes the notification signature: hex(sha1(body + timestamp + secret))
func Sign(body []byte, timestamp, secret string) string {
	h := sha1.New()
	h.Write(body)
	h.Write([]byte(timestamp))
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks a notification signature and its timestamp age
func VerifySignature(body []byte, timestamp, signature, secret string, maxAge time.Duration, now time.Time) error {
	if signature == "" || timestamp == "" {
		return ErrMissingSignature
	}

	expected := Sign(body, timestamp, secret)
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(signature)), []byte(expected)) != 1 {
		return ErrInvalidSignature
	}

	if maxAge > 0 {
		secs, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			return ErrInvalidSignature
		}
		age := now.Sub(time.Unix(secs, 0))
		if age > maxAge || age < -maxAge {
			return ErrStaleSignature
		}
	}
	return nil
}
