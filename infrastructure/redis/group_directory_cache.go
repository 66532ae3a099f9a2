package redis

import (
	"context"
	"sort"
	"strings"
	"time"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/services"
	"attendance-tasks/pkg/logger"

	"github.com/google/uuid"
)

const directoryKeyPrefix = "directory:"

// JSONCache is the slice of Client the directory cache needs.
type JSONCache interface {
	GetOrSet(ctx context.Context, key string, target any, ttl time.Duration, getter func() (any, error)) error
	ScanAndDelete(ctx context.Context, pattern string) (int64, error)
}

// GroupDirectory caches another directory in Redis. When the cache is
// unreachable it reads through to the source.
type GroupDirectory struct {
	source services.GroupDirectory
	cache  JSONCache
	ttl    time.Duration
}

var (
	_ services.GroupDirectory       = (*GroupDirectory)(nil)
	_ services.DirectoryInvalidator = (*GroupDirectory)(nil)
)

func NewGroupDirectory(source services.GroupDirectory, cache JSONCache, ttl time.Duration) *GroupDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &GroupDirectory{source: source, cache: cache, ttl: ttl}
}

// absent answers are cached too, so they are wrapped
type ledEntry struct {
	Group *models.Group `json:"group"`
}

type membershipEntry struct {
	GroupID *uuid.UUID `json:"groupId"`
}

func (d *GroupDirectory) RoleOf(ctx context.Context, userID uuid.UUID) (*models.Identity, error) {
	return cached(ctx, d, "role:"+userID.String(), func() (*models.Identity, error) {
		return d.source.RoleOf(ctx, userID)
	})
}

func (d *GroupDirectory) GroupLed(ctx context.Context, userID uuid.UUID) (*models.Group, error) {
	entry, err := cached(ctx, d, "led:"+userID.String(), func() (ledEntry, error) {
		group, err := d.source.GroupLed(ctx, userID)
		return ledEntry{Group: group}, err
	})
	return entry.Group, err
}

func (d *GroupDirectory) Membership(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	entry, err := cached(ctx, d, "membership:"+userID.String(), func() (membershipEntry, error) {
		groupID, err := d.source.Membership(ctx, userID)
		return membershipEntry{GroupID: groupID}, err
	})
	return entry.GroupID, err
}

func (d *GroupDirectory) MembersOf(ctx context.Context, groupIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(groupIDs) == 0 {
		return []uuid.UUID{}, nil
	}
	return cached(ctx, d, "members:"+joinIDs(groupIDs), func() ([]uuid.UUID, error) {
		return d.source.MembersOf(ctx, groupIDs)
	})
}

func (d *GroupDirectory) GroupByID(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	return cached(ctx, d, "group:"+groupID.String(), func() (*models.Group, error) {
		return d.source.GroupByID(ctx, groupID)
	})
}

// Invalidate drops every cached directory entry.
func (d *GroupDirectory) Invalidate(ctx context.Context) error {
	n, err := d.cache.ScanAndDelete(ctx, directoryKeyPrefix+"*")
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "Group directory cache cleared", "keys", n)
	return nil
}

func cached[T any](ctx context.Context, d *GroupDirectory, key string, load func() (T, error)) (T, error) {
	var (
		value     T
		sourceErr error
	)

	err := d.cache.GetOrSet(ctx, directoryKeyPrefix+key, &value, d.ttl, func() (any, error) {
		v, err := load()
		if err != nil {
			sourceErr = err
			return nil, err
		}
		return v, nil
	})
	if err == nil {
		return value, nil
	}
	if sourceErr != nil {
		var zero T
		return zero, sourceErr
	}

	logger.WarnContext(ctx, "Group directory cache unavailable", "key", key, "error", err)
	return load()
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
