package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTripPreservesTypes(t *testing.T) {
	in := map[string]Content{
		"email": EmailContent{Subject: "Sale", Preview: "30% off", Body: "Body text"},
		"facebook": SocialContent{
			Platform:    PlatformFacebook,
			Body:        "Check this out",
			Description: "#sale #deals",
		},
		"ppc": PPCContent{Headline: "30% Off", Description: "Today only", CTA: "Shop"},
		"sms": SMSContent{Body: "Sale on now"},
	}

	data, err := EncodeMap(in)
	require.NoError(t, err)

	out, err := DecodeMap(data)
	require.NoError(t, err)
	require.Len(t, out, 4)

	email, ok := out["email"].(EmailContent)
	require.True(t, ok)
	assert.Equal(t, "Sale", email.Subject)

	social, ok := out["facebook"].(SocialContent)
	require.True(t, ok)
	assert.Equal(t, PlatformFacebook, social.Platform)
	assert.Equal(t, "#sale #deals", social.Description)

	_, ok = out["ppc"].(PPCContent)
	assert.True(t, ok)
	_, ok = out["sms"].(SMSContent)
	assert.True(t, ok)
}

func TestDecodeMap_Empty(t *testing.T) {
	out, err := DecodeMap(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeMap_UnknownChannel(t *testing.T) {
	_, err := DecodeMap([]byte(`{"fax": {"channel": "fax", "payload": {}}}`))
	require.Error(t, err)
}
