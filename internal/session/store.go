// Package session 模擬登入狀態：同一時間最多一個身分，並持久化到單一 key。
//
// 沒有密碼驗證、沒有 token 過期，login 與 signup 一定成功。
// 狀態只有 ANONYMOUS 與 AUTHENTICATED 兩種：
//
//	ANONYMOUS --login/signup--> AUTHENTICATED
//	AUTHENTICATED --logout--> ANONYMOUS
//	AUTHENTICATED --switchRole--> AUTHENTICATED
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-event-hub/internal/cache"
	"go-event-hub/internal/model"
	"go-event-hub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultStorageKey = "eventHub_user"
	DefaultDelay      = time.Second
)

type Options struct {
	// StorageKey 持久化使用的 key
	StorageKey string
	// Delay 模擬 API 呼叫的延遲，無法取消
	Delay         time.Duration
	DefaultAvatar string
	NewID         func() string
}

type Store struct {
	kv   cache.KeyValueStore
	opts Options
	log  *zap.Logger

	mu   sync.RWMutex
	user *model.User
}

func NewStore(kv cache.KeyValueStore, opts Options) *Store {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Store{
		kv:   kv,
		opts: opts,
		log:  logger.WithComponent("session"),
	}
}

// Restore 啟動時從持久化 key 還原身分；內容無法解析時直接丟棄，視為未登入
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.opts.StorageKey)
	if errors.Is(err, cache.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var user *model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user == nil {
		s.log.Debug("discard unparseable session record", zap.String("key", s.opts.StorageKey))
		if rmErr := s.kv.Remove(ctx, s.opts.StorageKey); rmErr != nil {
			s.log.Warn("remove session record failed", zap.Error(rmErr))
		}
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.log.Info("session restored", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

// Login 不驗證帳密：由 email 推導顯示名稱，角色固定為 user
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	s.wait()

	user := &model.User{
		ID:     s.opts.NewID(),
		Name:   DisplayNameFromEmail(email),
		Email:  email,
		Role:   model.RoleUser,
		Avatar: s.opts.DefaultAvatar,
	}
	// 延遲結束後一定提交，即使呼叫端已放棄
	if err := s.commit(context.WithoutCancel(ctx), user); err != nil {
		return nil, err
	}
	s.log.Info("user logged in", zap.String("user_id", user.ID))
	return copyUser(user), nil
}

func (s *Store) Signup(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	s.wait()

	user := &model.User{
		ID:     s.opts.NewID(),
		Name:   name,
		Email:  email,
		Role:   role,
		Avatar: s.opts.DefaultAvatar,
	}
	if err := s.commit(context.WithoutCancel(ctx), user); err != nil {
		return nil, err
	}
	s.log.Info("user signed up", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return copyUser(user), nil
}

// Logout 清除身分與持久化紀錄，可重複呼叫
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// 先清掉持久化紀錄；失敗時維持登入，避免重啟後又被還原
	if err := s.kv.Remove(ctx, s.opts.StorageKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	s.user = nil
	return nil
}

// SwitchRole organizer 與 user 互換；未登入時不做任何事並回傳 nil
func (s *Store) SwitchRole(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}

	updated := copyUser(s.user)
	updated.Role = updated.Role.Toggled()
	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	s.user = updated
	s.log.Info("role switched", zap.String("user_id", updated.ID), zap.String("role", string(updated.Role)))
	return copyUser(updated), nil
}

// Current 回傳目前身分的複本與是否已登入
func (s *Store) Current() (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	return copyUser(s.user), true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) wait() {
	if s.opts.Delay > 0 {
		time.Sleep(s.opts.Delay)
	}
}

// commit 先寫入持久化 key，成功後才更新記憶體中的身分
func (s *Store) commit(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, user); err != nil {
		return err
	}
	s.user = user
	return nil
}

func (s *Store) persist(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, s.opts.StorageKey, string(data)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

// DisplayNameFromEmail 取 email 的 local part，非英文字母換成空白，每個單字首字母大寫
// 例如 "john.doe@example.com" -> "John Doe"
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return ' '
	}, local)
	// Caser 有狀態，不可在 goroutine 間共用
	return cases.Title(language.English, cases.NoLower).String(cleaned)
}
