package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"go-event-hub/internal/cache"
	"go-event-hub/internal/model"
	"go-event-hub/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAvatar = "https://example.com/avatar.png"

func newTestStore(kv cache.KeyValueStore) *session.Store {
	n := 0
	return session.NewStore(kv, session.Options{
		StorageKey:    session.DefaultStorageKey,
		Delay:         0,
		DefaultAvatar: testAvatar,
		NewID: func() string {
			n++
			return "user-" + strconv.Itoa(n)
		},
	})
}

// failingKV Set 與 Remove 一律失敗
type failingKV struct {
	cache.KeyValueStore
}

func (failingKV) Set(ctx context.Context, key, value string) error {
	return errors.New("storage unavailable")
}

func (failingKV) Remove(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}

// removeFailingKV 只有 Remove 失敗
type removeFailingKV struct {
	*cache.MemoryKeyValueStore
}

func (removeFailingKV) Remove(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}

func TestDisplayNameFromEmail(t *testing.T) {
	cases := map[string]string{
		"john.doe@example.com": "John Doe",
		"jane_smith@x.io":      "Jane Smith",
		"alice@example.com":    "Alice",
		"bob42@example.com":    "Bob  ",
		"mcDonald@example.com": "McDonald",
		"no-at-sign":           "No At Sign",
		"@example.com":         "",
		"":                     "",
		"ALLCAPS@example.com":  "ALLCAPS",
		"x.y.z@example.com":    "X Y Z",
	}
	for email, want := range cases {
		assert.Equal(t, want, session.DisplayNameFromEmail(email), email)
	}
}

func TestStore_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - derives name and user role", func(t *testing.T) {
		kv := cache.NewMemoryKeyValueStore()
		store := newTestStore(kv)

		user, err := store.Login(ctx, "john.doe@example.com", "anything")
		require.NoError(t, err)
		assert.Equal(t, "John Doe", user.Name)
		assert.Equal(t, "john.doe@example.com", user.Email)
		assert.Equal(t, model.RoleUser, user.Role)
		assert.Equal(t, testAvatar, user.Avatar)
		assert.NotEmpty(t, user.ID)

		current, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, user, current)
	})

	t.Run("Success - malformed email and empty password accepted", func(t *testing.T) {
		store := newTestStore(cache.NewMemoryKeyValueStore())
		user, err := store.Login(ctx, "not an email", "")
		require.NoError(t, err)
		assert.Equal(t, "Not An Email", user.Name)
		assert.True(t, store.IsAuthenticated())
	})

	t.Run("Success - cancelled context still commits identity", func(t *testing.T) {
		kv := cache.NewMemoryKeyValueStore()
		store := session.NewStore(kv, session.Options{Delay: 20 * time.Millisecond})

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		user, err := store.Login(cctx, "late@example.com", "pw")
		require.NoError(t, err)

		current, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, user.ID, current.ID)
		_, err = kv.Get(ctx, session.DefaultStorageKey)
		assert.NoError(t, err)
	})

	t.Run("Success - waits for the configured delay", func(t *testing.T) {
		store := session.NewStore(cache.NewMemoryKeyValueStore(), session.Options{Delay: 30 * time.Millisecond})
		start := time.Now()
		_, err := store.Login(ctx, "a@b.c", "pw")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("Failed - storage error leaves session anonymous", func(t *testing.T) {
		store := newTestStore(failingKV{KeyValueStore: cache.NewMemoryKeyValueStore()})
		_, err := store.Login(ctx, "a@b.c", "pw")
		require.Error(t, err)
		assert.False(t, store.IsAuthenticated())
	})
}

func TestStore_Signup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(cache.NewMemoryKeyValueStore())

	user, err := store.Signup(ctx, "  Weird Name 123 ", "org@example.com", "pw", model.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, "  Weird Name 123 ", user.Name)
	assert.Equal(t, model.RoleOrganizer, user.Role)
	assert.Equal(t, testAvatar, user.Avatar)

	// 重新登入會取代目前身分
	other, err := store.Login(ctx, "someone@example.com", "pw")
	require.NoError(t, err)
	current, _ := store.Current()
	assert.Equal(t, other.ID, current.ID)
	assert.NotEqual(t, user.ID, current.ID)
}

func TestStore_RestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryKeyValueStore()

	first := newTestStore(kv)
	user, err := first.Login(ctx, "jane.roe@example.com", "pw")
	require.NoError(t, err)

	// 模擬重新啟動
	second := newTestStore(kv)
	assert.False(t, second.IsAuthenticated())
	require.NoError(t, second.Restore(ctx))

	restored, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, user, restored)
}

func TestStore_RestoreDiscardsUnparseable(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{"{not json", "null", "42", `"string"`} {
		kv := cache.NewMemoryKeyValueStore()
		require.NoError(t, kv.Set(ctx, session.DefaultStorageKey, raw))

		store := newTestStore(kv)
		require.NoError(t, store.Restore(ctx), raw)
		assert.False(t, store.IsAuthenticated(), raw)

		_, err := kv.Get(ctx, session.DefaultStorageKey)
		assert.ErrorIs(t, err, cache.ErrKeyNotFound, raw)
	}
}

func TestStore_RestoreEmptySlot(t *testing.T) {
	store := newTestStore(cache.NewMemoryKeyValueStore())
	require.NoError(t, store.Restore(context.Background()))
	assert.False(t, store.IsAuthenticated())
}

func TestStore_Logout(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryKeyValueStore()
	store := newTestStore(kv)

	_, err := store.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx))
	assert.False(t, store.IsAuthenticated())
	_, err = kv.Get(ctx, session.DefaultStorageKey)
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	// 可重複呼叫
	require.NoError(t, store.Logout(ctx))
	assert.False(t, store.IsAuthenticated())
}

func TestStore_LogoutStorageError(t *testing.T) {
	ctx := context.Background()
	kv := removeFailingKV{MemoryKeyValueStore: cache.NewMemoryKeyValueStore()}
	store := newTestStore(kv)

	user, err := store.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)

	require.Error(t, store.Logout(ctx))
	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.ID)

	// 記憶體與持久化紀錄一致，重啟後還原的是同一個身分
	restarted := newTestStore(kv)
	require.NoError(t, restarted.Restore(ctx))
	restored, ok := restarted.Current()
	require.True(t, ok)
	assert.Equal(t, user.ID, restored.ID)
}

func TestStore_SwitchRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - toggles and persists", func(t *testing.T) {
		kv := cache.NewMemoryKeyValueStore()
		store := newTestStore(kv)
		user, err := store.Login(ctx, "a@b.c", "pw")
		require.NoError(t, err)

		switched, err := store.SwitchRole(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.RoleOrganizer, switched.Role)
		assert.Equal(t, user.ID, switched.ID)

		raw, err := kv.Get(ctx, session.DefaultStorageKey)
		require.NoError(t, err)
		var persisted model.User
		require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
		assert.Equal(t, model.RoleOrganizer, persisted.Role)

		again, err := store.SwitchRole(ctx)
		require.NoError(t, err)
		assert.Equal(t, user.Role, again.Role)
	})

	t.Run("Success - anonymous is a no-op", func(t *testing.T) {
		kv := cache.NewMemoryKeyValueStore()
		store := newTestStore(kv)
		user, err := store.SwitchRole(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.False(t, store.IsAuthenticated())
		_, err = kv.Get(ctx, session.DefaultStorageKey)
		assert.ErrorIs(t, err, cache.ErrKeyNotFound)
	})

	t.Run("Success - returned user is a copy", func(t *testing.T) {
		store := newTestStore(cache.NewMemoryKeyValueStore())
		user, err := store.Login(ctx, "a@b.c", "pw")
		require.NoError(t, err)
		user.Role = model.RoleOrganizer

		current, _ := store.Current()
		assert.Equal(t, model.RoleUser, current.Role)
	})
}

func TestStore_DefaultStorageKey(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryKeyValueStore()
	store := session.NewStore(kv, session.Options{})

	user, err := store.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)

	raw, err := kv.Get(ctx, session.DefaultStorageKey)
	require.NoError(t, err)
	var persisted model.User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, user.ID, persisted.ID)
}
