package store

import (
	"encoding/json"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

// document is the JSON form of a short link in document and key-value backends.
// ID and ShortKey both carry the key; ID is the item identity in Cosmos DB.
type document struct {
	ID        string    `json:"id"`
	ShortKey  string    `json:"shortKey"`
	LongURL   string    `json:"longUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func marshalLink(link *shortener.ShortLink) ([]byte, error) {
	return json.Marshal(document{
		ID:        string(link.Key),
		ShortKey:  string(link.Key),
		LongURL:   link.LongURL,
		CreatedAt: link.CreatedAt,
	})
}

func unmarshalLink(data []byte) (*shortener.ShortLink, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &shortener.ShortLink{
		Key:       shortener.Key(doc.ShortKey),
		LongURL:   doc.LongURL,
		CreatedAt: doc.CreatedAt,
	}, nil
}
