package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoomPrefix namespaces every room created by the issuer.
const RoomPrefix = "voice-chat-"

// ConnectionDetails is everything a client needs to join a room. Created once
// per session, immutable, discarded on disconnect.
type ConnectionDetails struct {
	AccessToken string `json:"accessToken"`
	URL         string `json:"url"`
	RoomName    string `json:"roomName"`
	Identity    string `json:"identity"`
}

// videoGrant mirrors the media platform's access-grant claim.
type videoGrant struct {
	RoomJoin             bool   `json:"roomJoin"`
	Room                 string `json:"room"`
	CanPublish           bool   `json:"canPublish"`
	CanSubscribe         bool   `json:"canSubscribe"`
	CanPublishData       bool   `json:"canPublishData"`
	CanUpdateOwnMetadata bool   `json:"canUpdateOwnMetadata"`
}

type grantClaims struct {
	jwt.RegisteredClaims
	Video videoGrant `json:"video"`
}

// Issuer mints signed, time-boxed room access tokens.
type Issuer struct {
	url       string
	apiKey    string
	apiSecret string
	ttl       time.Duration
}

func NewIssuer(url, apiKey, apiSecret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Issuer{
		url:       strings.TrimSpace(url),
		apiKey:    strings.TrimSpace(apiKey),
		apiSecret: strings.TrimSpace(apiSecret),
		ttl:       ttl,
	}
}

// Issue creates a fresh room and a credential for the given participant.
// An empty or blank participant name gets a random identity.
func (i *Issuer) Issue(participantName string) (ConnectionDetails, error) {
	room := RoomPrefix + randomSuffix(8)

	identity := strings.TrimSpace(participantName)
	if identity == "" {
		identity = "user-" + randomSuffix(6)
	}

	now := time.Now()
	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.apiKey,
			Subject:   identity,
			ID:        identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Video: videoGrant{
			RoomJoin:             true,
			Room:                 room,
			CanPublish:           true,
			CanSubscribe:         true,
			CanPublishData:       true,
			CanUpdateOwnMetadata: true,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.apiSecret))
	if err != nil {
		return ConnectionDetails{}, fmt.Errorf("sign access token: %w", err)
	}

	return ConnectionDetails{
		AccessToken: signed,
		URL:         i.url,
		RoomName:    room,
		Identity:    identity,
	}, nil
}

// TTL reports the credential lifetime the issuer stamps into tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func randomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
