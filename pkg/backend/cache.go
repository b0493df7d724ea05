package backend

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/convenehq/convene/pkg/proto"
)

// cache keeps recently resolved participant tokens so the hot
// response-submission path skips a database round trip.
type cache struct {
	b      *Backend
	tokens *lru.Cache[string, proto.Participation]
}

func newCache(b *Backend, size int) *cache {
	if size <= 0 {
		size = 1
	}
	c := &cache{b: b}
	cache, _ := lru.New[string, proto.Participation](size)
	c.tokens = cache
	return c
}

func (c *cache) Get(token string) (proto.Participation, bool) {
	return c.tokens.Get(token)
}

func (c *cache) Set(token string, p proto.Participation) {
	c.tokens.Add(token, p)
}

func (c *cache) Delete(token string) {
	c.tokens.Remove(token)
}

// InvalidateMeeting drops every cached participation of a meeting. Lifecycle
// transitions change what a token resolves to, so cached entries go stale.
func (c *cache) InvalidateMeeting(meetingID int64) {
	for _, token := range c.tokens.Keys() {
		if p, ok := c.tokens.Peek(token); ok && p.Meeting.ID == meetingID {
			c.tokens.Remove(token)
		}
	}
}

func (c *cache) Len() int {
	return c.tokens.Len()
}
