package content

import (
	"encoding/json"
	"fmt"

	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
)

// record is the stored form of a content entry. The channel tag drives
// decoding back into the right concrete type.
type record struct {
	Channel  intent.Channel  `json:"channel"`
	Platform Platform        `json:"platform,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// EncodeMap serializes a content map for storage. Keys are channel names,
// or platform names for social entries.
func EncodeMap(contents map[string]Content) ([]byte, error) {
	records := make(map[string]record, len(contents))
	for key, c := range contents {
		payload, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encoding %s content: %w", key, err)
		}
		rec := record{Channel: c.Channel(), Payload: payload}
		if sc, ok := c.(SocialContent); ok {
			rec.Platform = sc.Platform
		}
		records[key] = rec
	}
	return json.Marshal(records)
}

// DecodeMap deserializes a stored content map back into typed content.
func DecodeMap(data []byte) (map[string]Content, error) {
	if len(data) == 0 {
		return map[string]Content{}, nil
	}

	var records map[string]record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("decoding content map: %w", err))
	}

	contents := make(map[string]Content, len(records))
	for key, rec := range records {
		c, err := decodeRecord(rec)
		if err != nil {
			return nil, domain.NewInternalError(fmt.Errorf("decoding %s content: %w", key, err))
		}
		contents[key] = c
	}
	return contents, nil
}

func decodeRecord(rec record) (Content, error) {
	switch rec.Channel {
	case intent.ChannelEmail:
		var c EmailContent
		if err := json.Unmarshal(rec.Payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	case intent.ChannelSocial:
		var c SocialContent
		if err := json.Unmarshal(rec.Payload, &c); err != nil {
			return nil, err
		}
		if c.Platform == "" {
			c.Platform = rec.Platform
		}
		return c, nil
	case intent.ChannelPPC:
		var c PPCContent
		if err := json.Unmarshal(rec.Payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	case intent.ChannelSMS:
		var c SMSContent
		if err := json.Unmarshal(rec.Payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown channel %q", rec.Channel)
}
