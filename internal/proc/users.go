package proc

import (
	"os/user"
	"strconv"
)

// UserCache memoizes uid -> user name lookups for one run. It is not safe
// for concurrent use; columns are only fed from one goroutine.
type UserCache struct {
	names  map[uint32]string
	lookup func(uid string) (*user.User, error)
}

func NewUserCache() *UserCache {
	return &UserCache{names: map[uint32]string{}, lookup: user.LookupId}
}

// Name returns the user name for uid, or the numeric id when the lookup
// fails. Failures are cached too.
func (c *UserCache) Name(uid uint32) string {
	if n, ok := c.names[uid]; ok {
		return n
	}
	id := strconv.FormatUint(uint64(uid), 10)
	name := id
	if u, err := c.lookup(id); err == nil && u.Username != "" {
		name = u.Username
	}
	c.names[uid] = name
	return name
}
