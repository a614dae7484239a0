package menuconfig

import (
	"encoding/base64"
	"encoding/json"

	"github.com/beacheats/beachsync/internal/models"
)

// The shareable form is the compact diff JSON in URL-safe base64 ("+" and
// "/" swapped for "-" and "_", padding stripped) so it rides in a query
// parameter without percent-encoding churn.

// EncodeDiff serializes a diff for a shareable link or QR payload.
func EncodeDiff(d models.CatalogDiff) (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeDiff parses a shareable payload. Malformed base64 or JSON comes
// back as an error; callers degrade to "no override".
func DecodeDiff(s string) (models.CatalogDiff, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return models.CatalogDiff{}, err
	}
	var d models.CatalogDiff
	if err := json.Unmarshal(raw, &d); err != nil {
		return models.CatalogDiff{}, err
	}
	return d, nil
}
